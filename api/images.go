package api

import (
	"context"
	"fmt"
	"math"

	"github.com/tidwall/gjson"

	"github.com/teranos/visualgenome/errors"
	"github.com/teranos/visualgenome/logger"
	"github.com/teranos/visualgenome/model"
	"github.com/teranos/visualgenome/parse"
)

// ImageIDPageSize is the number of ids the service returns per page of
// /api/v0/images/all
const ImageIDPageSize = 1000

// eachPage walks a paginated listing starting at page 1. fn receives the
// page's results array and returns false to stop early. The walk ends when
// the page's next link is null.
func (c *Client) eachPage(ctx context.Context, pathFormat string, firstPage int, fn func(page int, results gjson.Result) (bool, error)) error {
	for page := firstPage; ; page++ {
		path := fmt.Sprintf(pathFormat, page)
		doc, err := c.Fetch(ctx, path)
		if err != nil {
			return err
		}
		if !doc.IsObject() {
			return errors.NewFieldTypeError("page", "$", "object", doc.Type.String())
		}
		results := doc.Get("results")
		if !results.Exists() {
			return errors.NewMissingFieldError("page", "results")
		}
		if !results.IsArray() {
			return errors.NewFieldTypeError("page", "results", "array", results.Type.String())
		}

		c.logger.Debugw("Fetched page",
			logger.FieldPath, path,
			logger.FieldPage, page,
			logger.FieldCount, len(results.Array()))

		more, err := fn(page, results)
		if err != nil {
			return errors.Wrapf(err, "page %d", page)
		}
		next := doc.Get("next")
		if !more || !next.Exists() || next.Type == gjson.Null {
			return nil
		}
	}
}

func idList(results gjson.Result) ([]int64, error) {
	elems := results.Array()
	ids := make([]int64, 0, len(elems))
	for i, e := range elems {
		if e.Type != gjson.Number || e.Num != math.Trunc(e.Num) {
			return nil, errors.NewFieldTypeError("image ids", fmt.Sprintf("[%d]", i), "integer", e.Raw)
		}
		ids = append(ids, e.Int())
	}
	return ids, nil
}

// GetAllImageIDs lists every image id in the dataset
func (c *Client) GetAllImageIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := c.eachPage(ctx, "/api/v0/images/all?page=%d", 1, func(page int, results gjson.Result) (bool, error) {
		pageIDs, err := idList(results)
		if err != nil {
			return false, err
		}
		ids = append(ids, pageIDs...)
		return true, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list image ids")
	}
	return ids, nil
}

// GetImageIDsInRange returns the ids at listing positions [start, end),
// clamped to the end of the listing. Only the pages covering the range
// are requested.
func (c *Client) GetImageIDsInRange(ctx context.Context, start, end int) ([]int64, error) {
	if start < 0 || end < start {
		return nil, errors.Newf("invalid image id range [%d, %d)", start, end)
	}
	if start == end {
		return []int64{}, nil
	}

	firstPage := start/ImageIDPageSize + 1
	lastPage := (end-1)/ImageIDPageSize + 1

	var ids []int64
	err := c.eachPage(ctx, "/api/v0/images/all?page=%d", firstPage, func(page int, results gjson.Result) (bool, error) {
		pageIDs, err := idList(results)
		if err != nil {
			return false, err
		}
		ids = append(ids, pageIDs...)
		return page < lastPage, nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list image ids in [%d, %d)", start, end)
	}

	offset := start % ImageIDPageSize
	if offset >= len(ids) {
		return []int64{}, nil
	}
	ids = ids[offset:]
	if n := end - start; n < len(ids) {
		ids = ids[:n]
	}
	return ids, nil
}

// GetImageData fetches one image record
func (c *Client) GetImageData(ctx context.Context, id int64) (*model.Image, error) {
	doc, err := c.Fetch(ctx, fmt.Sprintf("/api/v0/images/%d", id))
	if err != nil {
		return nil, errors.Wrapf(err, "image %d", id)
	}
	img, err := parse.Image(doc)
	if err != nil {
		return nil, errors.Wrapf(err, "image %d", id)
	}
	c.logger.Debugw("Parsed image", logger.FieldImageID, id)
	return img, nil
}

// GetRegionDescriptionsOfImage fetches an image and its region descriptions
func (c *Client) GetRegionDescriptionsOfImage(ctx context.Context, id int64) ([]*model.Region, error) {
	img, err := c.GetImageData(ctx, id)
	if err != nil {
		return nil, err
	}
	doc, err := c.Fetch(ctx, fmt.Sprintf("/api/v0/images/%d/regions", id))
	if err != nil {
		return nil, errors.Wrapf(err, "regions of image %d", id)
	}
	regions, err := parse.Regions(doc, img)
	if err != nil {
		return nil, errors.Wrapf(err, "regions of image %d", id)
	}
	return regions, nil
}

// GetRegionGraphOfRegion fetches the scene graph restricted to one region.
// The service answers with a list; its first element is the region's graph.
func (c *Client) GetRegionGraphOfRegion(ctx context.Context, imageID, regionID int64) (*model.Graph, error) {
	img, err := c.GetImageData(ctx, imageID)
	if err != nil {
		return nil, err
	}
	doc, err := c.Fetch(ctx, fmt.Sprintf("/api/v0/images/%d/regions/%d", imageID, regionID))
	if err != nil {
		return nil, errors.Wrapf(err, "region %d of image %d", regionID, imageID)
	}
	if !doc.IsArray() {
		return nil, errors.NewFieldTypeError("region graph", "$", "array", doc.Type.String())
	}
	elems := doc.Array()
	if len(elems) == 0 {
		return nil, errors.NewNotFoundError("region %d of image %d has no graph", regionID, imageID)
	}
	graph, err := parse.Graph(elems[0], img)
	if err != nil {
		return nil, errors.Wrapf(err, "region %d of image %d", regionID, imageID)
	}
	c.logger.Debugw("Parsed region graph",
		logger.FieldImageID, imageID,
		logger.FieldRegionID, regionID,
		logger.FieldCount, len(graph.Objects))
	return graph, nil
}

// GetSceneGraphOfImage fetches the full scene graph of an image
func (c *Client) GetSceneGraphOfImage(ctx context.Context, id int64) (*model.Graph, error) {
	img, err := c.GetImageData(ctx, id)
	if err != nil {
		return nil, err
	}
	doc, err := c.Fetch(ctx, fmt.Sprintf("/api/v0/images/%d/graph", id))
	if err != nil {
		return nil, errors.Wrapf(err, "scene graph of image %d", id)
	}
	graph, err := parse.Graph(doc, img)
	if err != nil {
		return nil, errors.Wrapf(err, "scene graph of image %d", id)
	}
	return graph, nil
}
