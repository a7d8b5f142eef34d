package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/visualgenome/am"
	"github.com/teranos/visualgenome/errors"
	"github.com/teranos/visualgenome/logger"
	"github.com/teranos/visualgenome/model"
)

// Output formats
const (
	formatJSON  = "json"
	formatYAML  = "yaml"
	formatTOML  = "toml"
	formatTable = "table"
)

var formatExtensions = map[string]string{
	formatJSON:  "json",
	formatYAML:  "yaml",
	formatTOML:  "toml",
	formatTable: "txt",
}

// emit renders v in the --format format to stdout, and to
// <data.dir>/<name>.<ext> when --save is set. key names the record kind
// for formats that need a top-level table.
func emit(cmd *cobra.Command, cfg *am.Config, key, name string, v any) error {
	format, _ := cmd.Flags().GetString(flagFormat)
	data, err := render(format, key, v)
	if err != nil {
		return err
	}
	if _, err := cmd.OutOrStdout().Write(data); err != nil {
		return errors.Wrap(err, "failed to write output")
	}

	save, _ := cmd.Flags().GetBool(flagSave)
	if !save {
		return nil
	}
	dir, err := am.EnsureDataDir(cfg)
	if err != nil {
		return err
	}
	path := filepath.Join(dir, name+"."+formatExtensions[format])
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "failed to save %s", path)
	}
	logger.Logger.Infow("Saved output", logger.FieldPath, path)
	pterm.Success.WithWriter(cmd.ErrOrStderr()).Printfln("Saved %s", path)
	return nil
}

// render encodes v in the given format
func render(format, key string, v any) ([]byte, error) {
	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal JSON")
		}
		return append(data, '\n'), nil

	case formatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal YAML")
		}
		return data, nil

	case formatTOML:
		// TOML documents are tables; lists and scalars go under key
		tree, err := tomlTree(v)
		if err != nil {
			return nil, err
		}
		data, err := toml.Marshal(map[string]any{key: tree})
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal TOML")
		}
		return data, nil

	case formatTable:
		rows, err := tableRows(v)
		if err != nil {
			return nil, err
		}
		out, err := pterm.DefaultTable.WithHasHeader().WithData(rows).Srender()
		if err != nil {
			return nil, errors.Wrap(err, "failed to render table")
		}
		return []byte(out + "\n"), nil

	default:
		return nil, errors.WithHint(
			errors.Newf("unsupported format: %s", format),
			"supported formats: json, yaml, toml, table")
	}
}

// tomlTree converts v to its JSON shape so TOML follows the same field
// names and omissions. TOML has no null: null fields are dropped, and null
// elements of an array become {present = false} tables while their table
// siblings get present = true.
func tomlTree(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal TOML")
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, errors.Wrap(err, "failed to marshal TOML")
	}
	return tomlValue(tree), nil
}

func tomlValue(v any) any {
	switch v := v.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n
		}
		f, _ := v.Float64()
		return f
	case map[string]any:
		for k, e := range v {
			if e == nil {
				delete(v, k)
				continue
			}
			v[k] = tomlValue(e)
		}
		return v
	case []any:
		hasNull := false
		for _, e := range v {
			hasNull = hasNull || e == nil
		}
		for i, e := range v {
			switch {
			case e == nil:
				v[i] = map[string]any{"present": false}
			case hasNull:
				if m, ok := e.(map[string]any); ok {
					m["present"] = true
				}
				v[i] = tomlValue(e)
			default:
				v[i] = tomlValue(e)
			}
		}
		return v
	default:
		return v
	}
}

// tableRows lays out a record as a header row followed by data rows
func tableRows(v any) (pterm.TableData, error) {
	switch rec := v.(type) {
	case *model.Image:
		return pterm.TableData{
			{"Field", "Value"},
			{"id", itoa(rec.ID)},
			{"url", rec.URL},
			{"size", fmt.Sprintf("%dx%d", rec.Width, rec.Height)},
			{"coco_id", optionalID(rec.CocoID)},
			{"flickr_id", optionalID(rec.FlickrID)},
		}, nil

	case []*model.Region:
		rows := pterm.TableData{{"ID", "Phrase", "Box"}}
		for _, r := range rec {
			rows = append(rows, []string{itoa(r.ID), r.Phrase, boxString(r.Box)})
		}
		return rows, nil

	case *model.Graph:
		rows := pterm.TableData{{"Kind", "ID", "Description"}}
		for _, o := range rec.Objects {
			rows = append(rows, []string{"object", itoa(o.ID), objectLabel(o) + " " + boxString(o.Box)})
		}
		for _, r := range rec.Relationships {
			rows = append(rows, []string{"relationship", itoa(r.ID),
				fmt.Sprintf("%s %s %s", objectLabel(r.Subject), r.Predicate, objectLabel(r.Object))})
		}
		for _, a := range rec.Attributes {
			rows = append(rows, []string{"attribute", itoa(a.ID),
				objectLabel(a.Subject) + ": " + strings.Join(a.Attributes, ", ")})
		}
		return rows, nil

	case []*model.QA:
		rows := pterm.TableData{{"ID", "Image", "Question", "Answer"}}
		for _, qa := range rec {
			imageID := ""
			if qa.Image != nil {
				imageID = itoa(qa.Image.ID)
			}
			rows = append(rows, []string{itoa(qa.ID), imageID, qa.Question, qa.Answer})
		}
		return rows, nil

	case []int64:
		rows := pterm.TableData{{"Image ID"}}
		for _, id := range rec {
			rows = append(rows, []string{itoa(id)})
		}
		return rows, nil

	default:
		return nil, errors.WithHint(
			errors.Newf("table format is not available for %T", v),
			"use --format json, yaml or toml")
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func optionalID(id *int64) string {
	if id == nil {
		return "-"
	}
	return itoa(*id)
}

func boxString(b model.Box) string {
	return fmt.Sprintf("(%d,%d) %dx%d", b.X, b.Y, b.Width, b.Height)
}

func objectLabel(o *model.Object) string {
	if o == nil {
		return "?"
	}
	if len(o.Names) > 0 {
		return o.Names[0]
	}
	return "#" + itoa(o.ID)
}
