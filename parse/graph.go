package parse

import (
	"github.com/tidwall/gjson"

	"github.com/teranos/visualgenome/errors"
	"github.com/teranos/visualgenome/model"
)

// Graph assembles a per-image bundle in three passes: objects from
// bounding_boxes, then relationships, then attributes, the last two resolving
// their endpoints by box id. Any failure discards the whole graph.
//
// The lookup is keyed by box id, so when a box holds several boxed objects
// references resolve to the last of them. Every boxed object still appears
// in Graph.Objects.
func Graph(r gjson.Result, image *model.Image) (*model.Graph, error) {
	f, err := objectFields("graph", r)
	if err != nil {
		return nil, err
	}

	boxes, err := f.array("bounding_boxes")
	if err != nil {
		return nil, err
	}
	var objects []*model.Object
	objectMap := make(map[int64]*model.Object, len(boxes))
	for i, box := range boxes {
		boxed, err := BoxedObjects(box, image)
		if err != nil {
			return nil, errors.Wrapf(err, "bounding box %d", i)
		}
		for _, obj := range boxed {
			objectMap[obj.ID] = obj
			objects = append(objects, obj)
		}
	}

	rels, err := f.array("relationships")
	if err != nil {
		return nil, err
	}
	relationships := make([]*model.Relationship, 0, len(rels))
	for i, rel := range rels {
		parsed, err := graphRelationship(rel, objectMap)
		if err != nil {
			return nil, errors.Wrapf(err, "relationship %d", i)
		}
		relationships = append(relationships, parsed)
	}

	attrs, err := f.array("attributes")
	if err != nil {
		return nil, err
	}
	attributes := make([]*model.Attribute, 0, len(attrs))
	for i, attr := range attrs {
		parsed, err := graphAttribute(attr, objectMap)
		if err != nil {
			return nil, errors.Wrapf(err, "attribute %d", i)
		}
		attributes = append(attributes, parsed)
	}

	if objects == nil {
		objects = []*model.Object{}
	}
	return &model.Graph{
		Image:         image,
		Objects:       objects,
		Relationships: relationships,
		Attributes:    attributes,
	}, nil
}
