package parse

import (
	"github.com/tidwall/gjson"

	"github.com/teranos/visualgenome/errors"
	"github.com/teranos/visualgenome/model"
)

// Image parses one image record. The id is read from "id", falling back to
// "image_id"; coco_id and flickr_id must be present but may be null.
func Image(r gjson.Result) (*model.Image, error) {
	f, err := objectFields("image", r)
	if err != nil {
		return nil, err
	}

	idKey := "id"
	if !f.has(idKey) {
		idKey = "image_id"
	}
	if !f.has(idKey) {
		return nil, errors.WithHint(errors.NewMissingFieldError("image", "id"),
			`image payloads carry their id as "id" or "image_id"`)
	}

	img := &model.Image{}
	if img.ID, err = f.int(idKey); err != nil {
		return nil, err
	}
	if img.URL, err = f.string("url"); err != nil {
		return nil, err
	}
	width, err := f.int("width")
	if err != nil {
		return nil, err
	}
	height, err := f.int("height")
	if err != nil {
		return nil, err
	}
	img.Width, img.Height = int(width), int(height)

	if img.CocoID, err = f.optionalInt("coco_id"); err != nil {
		return nil, err
	}
	if img.FlickrID, err = f.optionalInt("flickr_id"); err != nil {
		return nil, err
	}
	return img, nil
}
