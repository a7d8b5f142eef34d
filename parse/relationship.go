package parse

import (
	"github.com/tidwall/gjson"

	"github.com/teranos/visualgenome/errors"
	"github.com/teranos/visualgenome/model"
)

// Relationship parses one flat-list relationship whose subject and object
// are embedded object payloads. The sense is the first entry of "synsets".
func Relationship(r gjson.Result, image *model.Image) (*model.Relationship, error) {
	f, err := objectFields("relationship", r)
	if err != nil {
		return nil, err
	}

	rel := &model.Relationship{}
	if rel.ID, err = f.int("relationship_id"); err != nil {
		return nil, err
	}
	if rel.Subject, err = embeddedObject(f, "subject", image); err != nil {
		return nil, err
	}
	if rel.Predicate, err = f.string("predicate"); err != nil {
		return nil, err
	}
	if rel.Object, err = embeddedObject(f, "object", image); err != nil {
		return nil, err
	}
	if rel.Synset, rel.SynsetName, err = firstSynset(f, "synsets"); err != nil {
		return nil, err
	}
	return rel, nil
}

// Relationships parses a flat list of relationships.
func Relationships(r gjson.Result, image *model.Image) ([]*model.Relationship, error) {
	if !r.IsArray() {
		return nil, errors.NewFieldTypeError("relationships", "$", "array", typeName(r))
	}
	elems := r.Array()
	out := make([]*model.Relationship, 0, len(elems))
	for i, e := range elems {
		rel, err := Relationship(e, image)
		if err != nil {
			return nil, errors.Wrapf(err, "relationship %d", i)
		}
		out = append(out, rel)
	}
	return out, nil
}

func embeddedObject(f fields, key string, image *model.Image) (*model.Object, error) {
	v, err := f.get(key)
	if err != nil {
		return nil, err
	}
	obj, err := Object(v, image)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", f.entity, key)
	}
	return obj, nil
}

// graphRelationship parses a relationship from a graph bundle, resolving
// its endpoints by box id.
func graphRelationship(r gjson.Result, objects map[int64]*model.Object) (*model.Relationship, error) {
	f, err := objectFields("relationship", r)
	if err != nil {
		return nil, err
	}

	rel := &model.Relationship{}
	if rel.ID, err = f.int("id"); err != nil {
		return nil, err
	}
	if rel.Subject, err = resolveObject(f, "subject", objects); err != nil {
		return nil, err
	}
	if rel.Predicate, err = f.string("predicate"); err != nil {
		return nil, err
	}
	if rel.Object, err = resolveObject(f, "object", objects); err != nil {
		return nil, err
	}
	if rel.Synset, rel.SynsetName, err = firstSynset(f, "relationship_canon"); err != nil {
		return nil, err
	}
	return rel, nil
}

func resolveObject(f fields, key string, objects map[int64]*model.Object) (*model.Object, error) {
	id, err := f.int(key)
	if err != nil {
		return nil, err
	}
	obj, ok := objects[id]
	if !ok {
		return nil, errors.NewDanglingReferenceError(f.entity+" "+key, id)
	}
	return obj, nil
}
