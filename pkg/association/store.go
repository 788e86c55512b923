package association

import (
	"fmt"

	"github.com/mesh-intelligence/assocrows/pkg/types"
)

// Load reads the association identified by key and decodes every stored
// element. Returns types.ErrNotFound when the association does not exist.
func Load(store types.Store, key types.AssociationKey) ([]*Row, error) {
	doc, err := store.GetAssociation(key)
	if err != nil {
		return nil, err
	}
	return decodeAll(key, doc.Elements)
}

// Rows decodes the elements of doc using the key stored with it.
func Rows(doc *types.AssociationDocument) ([]*Row, error) {
	return decodeAll(doc.Key, doc.Elements)
}

func decodeAll(key types.AssociationKey, elements []any) ([]*Row, error) {
	rows := make([]*Row, 0, len(elements))
	for i, e := range elements {
		r, err := DefaultCodec.Decode(key, e)
		if err != nil {
			return nil, fmt.Errorf("decoding element %d: %w", i, err)
		}
		rows = append(rows, r)
	}
	return rows, nil
}

// Save encodes tuples and replaces the stored association. It returns the
// document ID.
func Save(store types.Store, key types.AssociationKey, tuples []types.Tuple) (string, error) {
	elements := make([]any, 0, len(tuples))
	for _, t := range tuples {
		elements = append(elements, DefaultCodec.Encode(key.Metadata, t))
	}
	return store.PutAssociation(key, elements)
}
