package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/visualgenome/errors"
)

const graphBundle = `{
	"bounding_boxes": [
		{"id": 1, "x": 10, "y": 10, "width": 50, "height": 80, "boxed_objects": [
			{"name": "man", "object_canon": [{"synset_name": "man.n.01", "synset_definition": "an adult male"}]},
			{"name": "person", "object_canon": []}
		]}
	],
	"relationships": [
		{"id": 20, "subject": 1, "predicate": "next to", "object": 1,
		 "relationship_canon": [{"synset_name": "next.r.01", "synset_definition": "nearest"}]}
	],
	"attributes": [
		{"id": 30, "subject": 1, "attribute": "tall", "attribute_canon": []}
	]
}`

func TestGraph(t *testing.T) {
	img := testImage()
	g, err := Graph(doc(t, graphBundle), img)
	require.NoError(t, err)

	assert.Same(t, img, g.Image)
	require.Len(t, g.Objects, 2)
	require.Len(t, g.Relationships, 1)
	require.Len(t, g.Attributes, 1)

	rel := g.Relationships[0]
	require.NotNil(t, rel.Subject)
	require.NotNil(t, rel.Object)
	assert.Equal(t, int64(20), rel.ID)
	assert.Equal(t, "next to", rel.Predicate)
	assert.Equal(t, "next.r.01", rel.Synset.Name)

	attr := g.Attributes[0]
	require.NotNil(t, attr.Subject)
	assert.Equal(t, []string{"tall"}, attr.Attributes)
	assert.Nil(t, attr.Synset)
}

func TestGraphLookupKeepsLastBoxedObject(t *testing.T) {
	g, err := Graph(doc(t, graphBundle), nil)
	require.NoError(t, err)

	// Both boxed objects share box id 1; references resolve to the later one.
	assert.Same(t, g.Objects[1], g.Relationships[0].Subject)
	assert.Same(t, g.Objects[1], g.Attributes[0].Subject)
	assert.Equal(t, []string{"person"}, g.Attributes[0].Subject.Names)
}

func TestGraphAttributeList(t *testing.T) {
	g, err := Graph(doc(t, `{
		"bounding_boxes": [{"id": 4, "x": 0, "y": 0, "width": 1, "height": 1, "boxed_objects": [{"name": "car", "object_canon": []}]}],
		"relationships": [],
		"attributes": [{"id": 1, "subject": 4, "attribute": ["red", "old"], "attribute_canon": []}]
	}`), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"red", "old"}, g.Attributes[0].Attributes)
	assert.Empty(t, g.Relationships)
}

func TestGraphDanglingReferences(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{
			name: "unknown relationship subject",
			payload: `{"bounding_boxes": [{"id": 1, "x": 0, "y": 0, "width": 1, "height": 1, "boxed_objects": [{"name": "a", "object_canon": []}]}],
				"relationships": [{"id": 2, "subject": 99, "predicate": "on", "object": 1, "relationship_canon": []}],
				"attributes": []}`,
		},
		{
			name: "unknown relationship object",
			payload: `{"bounding_boxes": [{"id": 1, "x": 0, "y": 0, "width": 1, "height": 1, "boxed_objects": [{"name": "a", "object_canon": []}]}],
				"relationships": [{"id": 2, "subject": 1, "predicate": "on", "object": 99, "relationship_canon": []}],
				"attributes": []}`,
		},
		{
			name: "unknown attribute subject",
			payload: `{"bounding_boxes": [],
				"relationships": [],
				"attributes": [{"id": 3, "subject": 5, "attribute": "red", "attribute_canon": []}]}`,
		},
		{
			name: "box with no boxed objects declares nothing",
			payload: `{"bounding_boxes": [{"id": 1, "x": 0, "y": 0, "width": 1, "height": 1, "boxed_objects": []}],
				"relationships": [{"id": 2, "subject": 1, "predicate": "on", "object": 1, "relationship_canon": []}],
				"attributes": []}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Graph(doc(t, tt.payload), nil)
			assert.Nil(t, g)
			require.Error(t, err)
			assert.True(t, errors.IsDanglingReferenceError(err), "got %v", err)
		})
	}
}

func TestGraphMissingSections(t *testing.T) {
	_, err := Graph(doc(t, `{"bounding_boxes": [], "relationships": []}`), nil)
	assert.True(t, errors.IsMissingFieldError(err))

	_, err = Graph(doc(t, `{"detail": "Not found."}`), nil)
	assert.True(t, errors.IsMissingFieldError(err))
}

func TestGraphEmpty(t *testing.T) {
	g, err := Graph(doc(t, `{"bounding_boxes": [], "relationships": [], "attributes": []}`), nil)
	require.NoError(t, err)
	assert.NotNil(t, g.Objects)
	assert.Empty(t, g.Objects)
}
