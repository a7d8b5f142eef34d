package parse

import (
	"github.com/tidwall/gjson"

	"github.com/teranos/visualgenome/errors"
	"github.com/teranos/visualgenome/model"
)

// Attribute parses one flat-list attribute record. The payload is itself an
// object payload: its object_id is both the attribute id and the subject id.
// A missing "attributes" key yields an empty list.
func Attribute(r gjson.Result, image *model.Image) (*model.Attribute, error) {
	f, err := objectFields("attribute", r)
	if err != nil {
		return nil, err
	}

	attr := &model.Attribute{Attributes: []string{}}
	if attr.ID, err = f.int("object_id"); err != nil {
		return nil, err
	}
	if attr.Subject, err = Object(r, image); err != nil {
		return nil, errors.Wrap(err, "attribute subject")
	}
	if f.has("attributes") {
		if attr.Attributes, err = f.stringList("attributes"); err != nil {
			return nil, err
		}
	}
	if attr.Synset, attr.SynsetName, err = firstSynset(f, "synsets"); err != nil {
		return nil, err
	}
	return attr, nil
}

// Attributes parses a flat list of attribute records.
func Attributes(r gjson.Result, image *model.Image) ([]*model.Attribute, error) {
	if !r.IsArray() {
		return nil, errors.NewFieldTypeError("attributes", "$", "array", typeName(r))
	}
	elems := r.Array()
	out := make([]*model.Attribute, 0, len(elems))
	for i, e := range elems {
		attr, err := Attribute(e, image)
		if err != nil {
			return nil, errors.Wrapf(err, "attribute %d", i)
		}
		out = append(out, attr)
	}
	return out, nil
}

// graphAttribute parses an attribute from a graph bundle. "attribute" may be
// a single string or a list.
func graphAttribute(r gjson.Result, objects map[int64]*model.Object) (*model.Attribute, error) {
	f, err := objectFields("attribute", r)
	if err != nil {
		return nil, err
	}

	attr := &model.Attribute{}
	if attr.ID, err = f.int("id"); err != nil {
		return nil, err
	}
	if attr.Subject, err = resolveObject(f, "subject", objects); err != nil {
		return nil, err
	}
	if attr.Attributes, err = f.stringList("attribute"); err != nil {
		return nil, err
	}
	if attr.Synset, attr.SynsetName, err = firstSynset(f, "attribute_canon"); err != nil {
		return nil, err
	}
	return attr, nil
}
