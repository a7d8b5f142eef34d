package parse

import (
	"github.com/tidwall/gjson"

	"github.com/teranos/visualgenome/errors"
	"github.com/teranos/visualgenome/model"
)

// QA parses one question-answer record. Its image_id must resolve through
// images; question_objects and answer_objects default to empty.
func QA(r gjson.Result, images map[int64]*model.Image) (*model.QA, error) {
	f, err := objectFields("qa", r)
	if err != nil {
		return nil, err
	}

	qa := &model.QA{}
	if qa.ID, err = f.int("qa_id"); err != nil {
		return nil, err
	}
	imageID, err := f.int("image_id")
	if err != nil {
		return nil, err
	}
	img, ok := images[imageID]
	if !ok || img == nil {
		return nil, errors.NewDanglingReferenceError("qa image", imageID)
	}
	qa.Image = img

	if qa.Question, err = f.string("question"); err != nil {
		return nil, err
	}
	if qa.Answer, err = f.string("answer"); err != nil {
		return nil, err
	}
	if qa.QuestionObjects, err = qaObjects(f, "question_objects"); err != nil {
		return nil, err
	}
	if qa.AnswerObjects, err = qaObjects(f, "answer_objects"); err != nil {
		return nil, err
	}
	return qa, nil
}

// QAs parses a list of question-answer records.
func QAs(r gjson.Result, images map[int64]*model.Image) ([]*model.QA, error) {
	if !r.IsArray() {
		return nil, errors.NewFieldTypeError("qas", "$", "array", typeName(r))
	}
	elems := r.Array()
	out := make([]*model.QA, 0, len(elems))
	for i, e := range elems {
		qa, err := QA(e, images)
		if err != nil {
			return nil, errors.Wrapf(err, "qa %d", i)
		}
		out = append(out, qa)
	}
	return out, nil
}

// QAImageIDs lists the distinct image ids referenced by a list of QA
// payloads, in first-seen order.
func QAImageIDs(r gjson.Result) ([]int64, error) {
	if !r.IsArray() {
		return nil, errors.NewFieldTypeError("qas", "$", "array", typeName(r))
	}
	seen := make(map[int64]bool)
	var ids []int64
	for i, e := range r.Array() {
		f, err := objectFields("qa", e)
		if err != nil {
			return nil, errors.Wrapf(err, "qa %d", i)
		}
		id, err := f.int("image_id")
		if err != nil {
			return nil, errors.Wrapf(err, "qa %d", i)
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func qaObjects(f fields, key string) ([]*model.QAObject, error) {
	out := []*model.QAObject{}
	if !f.has(key) {
		return out, nil
	}
	elems, err := f.array(key)
	if err != nil {
		return nil, err
	}
	for i, e := range elems {
		obj, err := qaObject(e)
		if err != nil {
			return nil, errors.Wrapf(err, "%s[%d]", key, i)
		}
		out = append(out, obj)
	}
	return out, nil
}

func qaObject(r gjson.Result) (*model.QAObject, error) {
	f, err := objectFields("qa object", r)
	if err != nil {
		return nil, err
	}
	start, err := f.int("entity_idx_start")
	if err != nil {
		return nil, err
	}
	end, err := f.int("entity_idx_end")
	if err != nil {
		return nil, err
	}
	name, err := f.string("entity_name")
	if err != nil {
		return nil, err
	}
	synset, err := inlineSynset("qa object", f)
	if err != nil {
		return nil, err
	}
	return &model.QAObject{
		StartIndex: int(start),
		EndIndex:   int(end),
		EntityName: name,
		Synset:     synset,
	}, nil
}
