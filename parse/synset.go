package parse

import (
	"github.com/tidwall/gjson"

	"github.com/teranos/visualgenome/errors"
	"github.com/teranos/visualgenome/model"
)

// Synset returns the sense built from the first candidate, or nil when the
// candidate list is empty. Later candidates are ignored. The first candidate
// must be a {"synset_name", "synset_definition"} object or null.
func Synset(candidates gjson.Result) (*model.Synset, error) {
	if !candidates.IsArray() {
		return nil, errors.NewFieldTypeError("synset", "$", "array", typeName(candidates))
	}
	list := candidates.Array()
	if len(list) == 0 {
		return nil, nil
	}
	s, bare, err := synsetCandidate(list[0])
	if err != nil {
		return nil, err
	}
	if bare != "" {
		return nil, errors.WithHint(
			errors.NewFieldTypeError("synset", "[0]", "object", "string"),
			"bare sense names are kept on the owning record, not as a Synset")
	}
	return s, nil
}

// synsetCandidate accepts {"synset_name", "synset_definition"} objects, null,
// and bare names as found in the dataset dumps. A bare name is returned
// separately so it never becomes a Synset without a definition.
func synsetCandidate(r gjson.Result) (*model.Synset, string, error) {
	switch {
	case r.Type == gjson.Null:
		return nil, "", nil
	case r.Type == gjson.String:
		if r.Str == "" {
			return nil, "", errors.NewFieldTypeError("synset", "$", "non-empty sense name", "empty string")
		}
		return nil, r.Str, nil
	case r.IsObject():
		s, err := inlineSynset("synset", fields{entity: "synset", r: r})
		return s, "", err
	default:
		return nil, "", errors.NewFieldTypeError("synset", "$", "object, string or null", typeName(r))
	}
}

// inlineSynset reads a sense whose keys live directly on f. Both keys are
// required so a sense is never half populated.
func inlineSynset(entity string, f fields) (*model.Synset, error) {
	f.entity = entity
	name, err := f.string("synset_name")
	if err != nil {
		return nil, err
	}
	definition, err := f.string("synset_definition")
	if err != nil {
		return nil, err
	}
	return &model.Synset{Name: name, Definition: definition}, nil
}

// synsetList parses every element of a parallel synsets array. bare is nil
// unless some element was a bare name; then it is parallel to synsets.
func synsetList(f fields, key string) (synsets []*model.Synset, bare []string, err error) {
	elems, err := f.array(key)
	if err != nil {
		return nil, nil, err
	}
	synsets = make([]*model.Synset, 0, len(elems))
	names := make([]string, 0, len(elems))
	anyBare := false
	for i, e := range elems {
		s, name, err := synsetCandidate(e)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "%s %s[%d]", f.entity, key, i)
		}
		synsets = append(synsets, s)
		names = append(names, name)
		anyBare = anyBare || name != ""
	}
	if anyBare {
		bare = names
	}
	return synsets, bare, nil
}

// firstSynset reads the sense list under key and keeps its first entry,
// either as a full Synset or as a bare name.
func firstSynset(f fields, key string) (*model.Synset, string, error) {
	v, err := f.get(key)
	if err != nil {
		return nil, "", err
	}
	if !v.IsArray() {
		return nil, "", errors.NewFieldTypeError(f.entity, key, "array", typeName(v))
	}
	list := v.Array()
	if len(list) == 0 {
		return nil, "", nil
	}
	s, bare, err := synsetCandidate(list[0])
	if err != nil {
		return nil, "", errors.Wrapf(err, "%s %s", f.entity, key)
	}
	return s, bare, nil
}
