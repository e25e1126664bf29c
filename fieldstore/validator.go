package fieldstore

import (
	"context"

	"github.com/tomberek/fieldstore/field"
)

// validate approves f before any write. The returned field may differ from
// f only by the indexed flag being switched on.
func (s *Store) validate(ctx context.Context, q querier, f field.Field) (field.Field, error) {
	if !f.AcceptsDataType() {
		return f, field.InvalidDataType("field type %s does not accept data type %s (accepts %v)",
			f.Kind, f.DataType, f.Kind.AcceptedDataTypes())
	}
	if f.ContentTypeID == "" {
		return f, field.MissingContentType("field type %s does not have a content type set", f.Kind)
	}

	if f.NeedsIndex() && !f.Indexed {
		f = f.WithIndexed(true)
	}

	if f.Kind.OnePerContentType() {
		siblings, err := selectFields(ctx, q, sqlFindByContentType, f.ContentTypeID)
		if err != nil {
			return f, err
		}
		for _, sib := range siblings {
			if sib.Inode == f.Inode {
				continue
			}
			if sib.Kind == f.Kind {
				return f, field.DuplicateSingletonField("content type %s cannot have two %s fields",
					s.contentTypeLabel(ctx, q, f.ContentTypeID), f.Kind)
			}
		}
	}
	return f, nil
}
