package parse

import (
	"github.com/tidwall/gjson"

	"github.com/teranos/visualgenome/errors"
	"github.com/teranos/visualgenome/model"
)

// ObjectShape names the label convention an object payload uses.
type ObjectShape int

const (
	// ObjectShapeNames carries a "names" array.
	ObjectShapeNames ObjectShape = iota + 1
	// ObjectShapeName carries a single "name" string.
	ObjectShapeName
)

func (s ObjectShape) String() string {
	switch s {
	case ObjectShapeNames:
		return "names"
	case ObjectShapeName:
		return "name"
	default:
		return "unknown"
	}
}

// DetectObjectShape picks the label convention of an object payload.
// "names" wins when both keys are present.
func DetectObjectShape(r gjson.Result) (ObjectShape, error) {
	switch {
	case r.Get("names").Exists():
		return ObjectShapeNames, nil
	case r.Get("name").Exists():
		return ObjectShapeName, nil
	default:
		return 0, errors.NewShapeAmbiguityError("object", "names", "name")
	}
}

// Object parses one flat-list object ({"object_id", "x", "y", "w", "h", ...}).
func Object(r gjson.Result, image *model.Image) (*model.Object, error) {
	f, err := objectFields("object", r)
	if err != nil {
		return nil, err
	}
	shape, err := DetectObjectShape(r)
	if err != nil {
		return nil, err
	}

	obj := &model.Object{Image: image}
	if obj.ID, err = f.int("object_id"); err != nil {
		return nil, err
	}
	if obj.X, obj.Y, obj.Width, obj.Height, err = f.box("x", "y", "w", "h"); err != nil {
		return nil, err
	}

	switch shape {
	case ObjectShapeNames:
		names, err := f.array("names")
		if err != nil {
			return nil, err
		}
		obj.Names = make([]string, 0, len(names))
		for _, n := range names {
			if n.Type != gjson.String {
				return nil, errors.NewFieldTypeError("object", "names", "array of strings", "array containing "+typeName(n))
			}
			obj.Names = append(obj.Names, n.Str)
		}
	case ObjectShapeName:
		name, err := f.string("name")
		if err != nil {
			return nil, err
		}
		obj.Names = []string{name}
	}

	if obj.Synsets, obj.SynsetNames, err = synsetList(f, "synsets"); err != nil {
		return nil, err
	}
	return obj, nil
}

// Objects parses a flat list where each element is one object.
func Objects(r gjson.Result, image *model.Image) ([]*model.Object, error) {
	if !r.IsArray() {
		return nil, errors.NewFieldTypeError("objects", "$", "array", typeName(r))
	}
	elems := r.Array()
	out := make([]*model.Object, 0, len(elems))
	for i, e := range elems {
		obj, err := Object(e, image)
		if err != nil {
			return nil, errors.Wrapf(err, "object %d", i)
		}
		out = append(out, obj)
	}
	return out, nil
}

// BoxedObjects parses a bounding box bundle ({"id", "x", "y", "width",
// "height", "boxed_objects"}). Every boxed object becomes its own Object that
// shares the box's id and coordinates and carries its own label and sense.
func BoxedObjects(r gjson.Result, image *model.Image) ([]*model.Object, error) {
	f, err := objectFields("bounding box", r)
	if err != nil {
		return nil, err
	}
	id, err := f.int("id")
	if err != nil {
		return nil, err
	}
	x, y, w, h, err := f.box("x", "y", "width", "height")
	if err != nil {
		return nil, err
	}
	boxed, err := f.array("boxed_objects")
	if err != nil {
		return nil, err
	}

	out := make([]*model.Object, 0, len(boxed))
	for i, b := range boxed {
		bf, err := objectFields("boxed object", b)
		if err != nil {
			return nil, errors.Wrapf(err, "bounding box %d boxed object %d", id, i)
		}
		name, err := bf.string("name")
		if err != nil {
			return nil, errors.Wrapf(err, "bounding box %d boxed object %d", id, i)
		}
		synset, bare, err := firstSynset(bf, "object_canon")
		if err != nil {
			return nil, errors.Wrapf(err, "bounding box %d boxed object %d", id, i)
		}
		obj := &model.Object{
			ID:      id,
			Box:     model.Box{X: x, Y: y, Width: w, Height: h},
			Names:   []string{name},
			Synsets: []*model.Synset{synset},
			Image:   image,
		}
		if bare != "" {
			obj.SynsetNames = []string{bare}
		}
		out = append(out, obj)
	}
	return out, nil
}
