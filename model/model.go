// Package model holds the records produced from Visual Genome payloads.
//
// Records are plain values built once by the parse package and handed to the
// caller; nothing here performs I/O or mutates after construction. References
// between records (an Object's Image, a Relationship's endpoints) are pointers
// into the same parse result.
package model

// Synset is a canonical word sense such as "man.n.01".
// A nil *Synset means the payload carried no sense.
type Synset struct {
	Name       string `json:"name" yaml:"name" toml:"name"`
	Definition string `json:"definition,omitempty" yaml:"definition,omitempty" toml:"definition,omitempty"`
}

// Image is one dataset image.
type Image struct {
	ID       int64  `json:"id" yaml:"id" toml:"id"`
	URL      string `json:"url" yaml:"url" toml:"url"`
	Width    int    `json:"width" yaml:"width" toml:"width"`
	Height   int    `json:"height" yaml:"height" toml:"height"`
	CocoID   *int64 `json:"coco_id,omitempty" yaml:"coco_id,omitempty" toml:"coco_id,omitempty"`
	FlickrID *int64 `json:"flickr_id,omitempty" yaml:"flickr_id,omitempty" toml:"flickr_id,omitempty"`
}

// Box is a rectangle in image pixel coordinates.
type Box struct {
	X      int `json:"x" yaml:"x" toml:"x"`
	Y      int `json:"y" yaml:"y" toml:"y"`
	Width  int `json:"width" yaml:"width" toml:"width"`
	Height int `json:"height" yaml:"height" toml:"height"`
}

// Object is a labelled bounding box. Synsets[i] describes Names[i]; an
// entry is nil when that label has no sense. Payloads that carry bare
// sense names instead of {name, definition} pairs fill SynsetNames, which
// is parallel to Synsets and holds "" where a full Synset was given.
type Object struct {
	ID          int64     `json:"id" yaml:"id" toml:"id"`
	Box         `yaml:",inline" toml:"box"`
	Names       []string  `json:"names" yaml:"names" toml:"names"`
	Synsets     []*Synset `json:"synsets" yaml:"synsets" toml:"synsets,omitempty"`
	SynsetNames []string  `json:"synset_names,omitempty" yaml:"synset_names,omitempty" toml:"synset_names,omitempty"`
	Image       *Image    `json:"image,omitempty" yaml:"image,omitempty" toml:"image,omitempty"`
}

// Attribute describes a property of an Object, e.g. "red".
type Attribute struct {
	ID         int64    `json:"id" yaml:"id" toml:"id"`
	Subject    *Object  `json:"subject" yaml:"subject" toml:"subject"`
	Attributes []string `json:"attributes" yaml:"attributes" toml:"attributes"`
	Synset     *Synset  `json:"synset,omitempty" yaml:"synset,omitempty" toml:"synset,omitempty"`
	SynsetName string   `json:"synset_name,omitempty" yaml:"synset_name,omitempty" toml:"synset_name,omitempty"` // bare sense name when no definition was given
}

// Relationship links two Objects, e.g. "man - jumping over - fire hydrant".
type Relationship struct {
	ID         int64   `json:"id" yaml:"id" toml:"id"`
	Subject    *Object `json:"subject" yaml:"subject" toml:"subject"`
	Predicate  string  `json:"predicate" yaml:"predicate" toml:"predicate"`
	Object     *Object `json:"object" yaml:"object" toml:"object"`
	Synset     *Synset `json:"synset,omitempty" yaml:"synset,omitempty" toml:"synset,omitempty"`
	SynsetName string  `json:"synset_name,omitempty" yaml:"synset_name,omitempty" toml:"synset_name,omitempty"` // bare sense name when no definition was given
}

// Region is a described area of an image.
type Region struct {
	ID     int64  `json:"id" yaml:"id" toml:"id"`
	Image  *Image `json:"image,omitempty" yaml:"image,omitempty" toml:"image,omitempty"`
	Phrase string `json:"phrase" yaml:"phrase" toml:"phrase"`
	Box    `yaml:",inline" toml:"box"`
}

// Graph is the full annotation snapshot of one image.
type Graph struct {
	Image         *Image          `json:"image" yaml:"image" toml:"image"`
	Objects       []*Object       `json:"objects" yaml:"objects" toml:"objects"`
	Relationships []*Relationship `json:"relationships" yaml:"relationships" toml:"relationships"`
	Attributes    []*Attribute    `json:"attributes" yaml:"attributes" toml:"attributes"`
}

// QAObject is a labelled span of a question or answer; StartIndex and
// EndIndex are character offsets into that text.
type QAObject struct {
	StartIndex int     `json:"start_index" yaml:"start_index" toml:"start_index"`
	EndIndex   int     `json:"end_index" yaml:"end_index" toml:"end_index"`
	EntityName string  `json:"entity_name" yaml:"entity_name" toml:"entity_name"`
	Synset     *Synset `json:"synset,omitempty" yaml:"synset,omitempty" toml:"synset,omitempty"`
}

// QA is a question-answer pair about an image.
type QA struct {
	ID              int64       `json:"id" yaml:"id" toml:"id"`
	Image           *Image      `json:"image" yaml:"image" toml:"image"`
	Question        string      `json:"question" yaml:"question" toml:"question"`
	Answer          string      `json:"answer" yaml:"answer" toml:"answer"`
	QuestionObjects []*QAObject `json:"question_objects" yaml:"question_objects" toml:"question_objects"`
	AnswerObjects   []*QAObject `json:"answer_objects" yaml:"answer_objects" toml:"answer_objects"`
}
