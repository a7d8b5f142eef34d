package parse

import (
	"github.com/tidwall/gjson"

	"github.com/teranos/visualgenome/errors"
	"github.com/teranos/visualgenome/model"
)

// RegionIDKey is the key a batch of region payloads stores its ids under.
type RegionIDKey string

const (
	RegionIDKeyRegionID RegionIDKey = "region_id"
	RegionIDKeyID       RegionIDKey = "id"
)

// DetectRegionIDKey decides the id key for a whole batch from its first element.
func DetectRegionIDKey(first gjson.Result) (RegionIDKey, error) {
	switch {
	case first.Get(string(RegionIDKeyRegionID)).Exists():
		return RegionIDKeyRegionID, nil
	case first.Get(string(RegionIDKeyID)).Exists():
		return RegionIDKeyID, nil
	default:
		return "", errors.NewShapeAmbiguityError("region", string(RegionIDKeyRegionID), string(RegionIDKeyID))
	}
}

// Region parses one region description using the batch's id key.
func Region(r gjson.Result, image *model.Image, key RegionIDKey) (*model.Region, error) {
	f, err := objectFields("region", r)
	if err != nil {
		return nil, err
	}

	region := &model.Region{Image: image}
	if region.ID, err = f.int(string(key)); err != nil {
		return nil, err
	}
	if region.Phrase, err = f.string("phrase"); err != nil {
		return nil, err
	}
	if region.X, region.Y, region.Width, region.Height, err = f.box("x", "y", "width", "height"); err != nil {
		return nil, err
	}
	return region, nil
}

// Regions parses a batch of region descriptions. The id key is chosen once,
// from the first element, and every element must use it.
func Regions(r gjson.Result, image *model.Image) ([]*model.Region, error) {
	if !r.IsArray() {
		return nil, errors.NewFieldTypeError("regions", "$", "array", typeName(r))
	}
	elems := r.Array()
	if len(elems) == 0 {
		return []*model.Region{}, nil
	}

	key, err := DetectRegionIDKey(elems[0])
	if err != nil {
		return nil, err
	}
	out := make([]*model.Region, 0, len(elems))
	for i, e := range elems {
		region, err := Region(e, image, key)
		if err != nil {
			return nil, errors.Wrapf(err, "region %d", i)
		}
		out = append(out, region)
	}
	return out, nil
}
