package fieldstore

const fieldColumns = `f.inode, f.structure_inode, f.field_name, f.field_type, f.field_relation_type,
  f.field_contentlet, f.required, f.indexed, f.listed, f.velocity_var_name, f.sort_order,
  f.field_values, f.regex_check, f.hint, f.default_value, f.fixed, f.read_only, f.searchable,
  f.unique_, f.mod_date, i.owner, i.idate`

const sqlSelectFields = `SELECT ` + fieldColumns + ` FROM field f LEFT JOIN inode i ON i.inode = f.inode`

const (
	sqlFindByID                  = sqlSelectFields + ` WHERE f.inode = ?`
	sqlFindByContentType         = sqlSelectFields + ` WHERE f.structure_inode = ? ORDER BY f.sort_order, f.inode`
	sqlFindByContentTypeVariable = sqlSelectFields + ` WHERE f.structure_inode = (SELECT s.inode FROM structure s WHERE s.velocity_var_name = ?) ORDER BY f.sort_order, f.inode`
	sqlFindByContentTypeAndVar   = sqlSelectFields + ` WHERE f.structure_inode = ? AND f.velocity_var_name = ?`

	sqlSelectColumnsOfDataType = `SELECT field_contentlet FROM field WHERE structure_inode = ? AND field_contentlet LIKE ?`
	sqlCountOfKind             = `SELECT count(*) FROM field WHERE structure_inode = ? AND field_type = ?`
	sqlCountOfVariable         = `SELECT count(*) FROM field WHERE structure_inode = ? AND velocity_var_name = ?`

	sqlInsertInode = `INSERT INTO inode (inode, idate, owner, type) VALUES (?, ?, ?, 'field')
  ON CONFLICT (inode) DO UPDATE SET idate = excluded.idate, owner = excluded.owner`
	sqlUpdateInode = `UPDATE inode SET idate = ?, owner = ? WHERE inode = ?`
	sqlDeleteInode = `DELETE FROM inode WHERE inode = ?`

	sqlInsertField = `INSERT INTO field (inode, structure_inode, field_name, field_type, field_relation_type,
  field_contentlet, required, indexed, listed, velocity_var_name, sort_order, field_values, regex_check,
  hint, default_value, fixed, read_only, searchable, unique_, mod_date)
  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	sqlUpdateField = `UPDATE field SET structure_inode = ?, field_name = ?, field_type = ?, field_relation_type = ?,
  required = ?, indexed = ?, listed = ?, velocity_var_name = ?, sort_order = ?, field_values = ?,
  regex_check = ?, hint = ?, default_value = ?, fixed = ?, read_only = ?, searchable = ?, unique_ = ?,
  mod_date = ? WHERE inode = ?`
	sqlDeleteField = `DELETE FROM field WHERE inode = ?`

	sqlSelectFieldVars      = `SELECT id, field_id, variable_name, variable_key, variable_value, user_id, last_mod_date FROM field_variable WHERE field_id = ?`
	sqlSelectFieldVar       = `SELECT id, field_id, variable_name, variable_key, variable_value, user_id, last_mod_date FROM field_variable WHERE id = ?`
	sqlInsertFieldVar       = `INSERT INTO field_variable (id, field_id, variable_name, variable_key, variable_value, user_id, last_mod_date) VALUES (?, ?, ?, ?, ?, ?, ?)`
	sqlDeleteFieldVar       = `DELETE FROM field_variable WHERE id = ?`
	sqlDeleteFieldVarByKey  = `DELETE FROM field_variable WHERE field_id = ? AND variable_key = ?`
	sqlDeleteFieldVarsField = `DELETE FROM field_variable WHERE field_id = ?`

	sqlSelectStructure = `SELECT inode, name, velocity_var_name FROM structure WHERE inode = ?`
	sqlInsertStructure = `INSERT INTO structure (inode, name, velocity_var_name) VALUES (?, ?, ?)
  ON CONFLICT (inode) DO NOTHING`
)
