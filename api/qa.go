package api

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/teranos/visualgenome/errors"
	"github.com/teranos/visualgenome/logger"
	"github.com/teranos/visualgenome/model"
	"github.com/teranos/visualgenome/parse"
)

// QuestionTypes are the accepted values for GetQAOfType
var QuestionTypes = []string{"what", "where", "when", "who", "why", "how"}

// ValidQuestionType reports whether qtype is one of QuestionTypes
func ValidQuestionType(qtype string) bool {
	for _, t := range QuestionTypes {
		if t == qtype {
			return true
		}
	}
	return false
}

// GetAllQAs lists question-answer pairs across the dataset, stopping after
// limit records (0 = no limit)
func (c *Client) GetAllQAs(ctx context.Context, limit int) ([]*model.QA, error) {
	qas, err := c.collectQAs(ctx, "/api/v0/qa/all?page=%d", limit, newImageCache(c))
	if err != nil {
		return nil, errors.Wrap(err, "failed to list QAs")
	}
	return qas, nil
}

// GetQAOfType lists question-answer pairs whose question starts with qtype
func (c *Client) GetQAOfType(ctx context.Context, qtype string, limit int) ([]*model.QA, error) {
	if !ValidQuestionType(qtype) {
		return nil, errors.WithHintf(
			errors.Newf("unknown question type %q", qtype),
			"valid types: %v", QuestionTypes)
	}
	log := c.logger.With(logger.FieldQAType, qtype)
	log.Debugw("Listing QAs of type", "limit", limit)

	qas, err := c.collectQAs(ctx, "/api/v0/qa/"+qtype+"?page=%d", limit, newImageCache(c))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list %q QAs", qtype)
	}
	return qas, nil
}

// GetQAOfImage lists every question-answer pair about one image
func (c *Client) GetQAOfImage(ctx context.Context, id int64) ([]*model.QA, error) {
	img, err := c.GetImageData(ctx, id)
	if err != nil {
		return nil, err
	}
	cache := newImageCache(c)
	cache.images[img.ID] = img

	qas, err := c.collectQAs(ctx, fmt.Sprintf("/api/v0/image/%d/qa", id)+"?page=%d", 0, cache)
	if err != nil {
		return nil, errors.Wrapf(err, "QAs of image %d", id)
	}
	return qas, nil
}

func (c *Client) collectQAs(ctx context.Context, pathFormat string, limit int, cache *imageCache) ([]*model.QA, error) {
	qas := []*model.QA{}
	err := c.eachPage(ctx, pathFormat, 1, func(page int, results gjson.Result) (bool, error) {
		ids, err := parse.QAImageIDs(results)
		if err != nil {
			return false, err
		}
		if err := cache.load(ctx, ids); err != nil {
			return false, err
		}
		pageQAs, err := parse.QAs(results, cache.images)
		if err != nil {
			return false, err
		}
		qas = append(qas, pageQAs...)
		return limit <= 0 || len(qas) < limit, nil
	})
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(qas) > limit {
		qas = qas[:limit]
	}
	return qas, nil
}

// imageCache resolves QA image ids, fetching each distinct image once
type imageCache struct {
	client *Client
	images map[int64]*model.Image
}

func newImageCache(c *Client) *imageCache {
	return &imageCache{client: c, images: make(map[int64]*model.Image)}
}

func (ic *imageCache) load(ctx context.Context, ids []int64) error {
	for _, id := range ids {
		if _, ok := ic.images[id]; ok {
			continue
		}
		img, err := ic.client.GetImageData(ctx, id)
		if err != nil {
			return err
		}
		ic.images[id] = img
	}
	return nil
}
