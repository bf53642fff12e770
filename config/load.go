package config

import (
	_ "embed"
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaSource string

const schemaURL = "tremor://tuning.schema.json"

var ErrInvalidTuning = errors.New("invalid tuning")

// Load reads a YAML tuning file over the defaults
// The document is checked against the embedded schema before decoding
func Load(path string) (Tuning, error) {
	t := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, errors.Wrap(err, "read tuning")
	}
	if err := Parse(raw, &t); err != nil {
		return t, errors.Wrapf(err, "tuning %s", path)
	}
	return t, nil
}

// Parse validates and decodes a YAML document into t, leaving absent keys untouched
func Parse(raw []byte, t *Tuning) error {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return errors.Wrap(err, "yaml")
	}
	if doc == nil {
		return nil
	}
	if err := validateSchema(doc); err != nil {
		return err
	}
	if err := yaml.Unmarshal(raw, t); err != nil {
		return errors.Wrap(err, "decode")
	}
	return t.Validate()
}

func validateSchema(doc any) error {
	schema, err := jsonschema.CompileString(schemaURL, schemaSource)
	if err != nil {
		return errors.Wrap(err, "compile schema")
	}

	// Schema validation works on JSON value types
	buf, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "normalize")
	}
	var normalized any
	if err := json.Unmarshal(buf, &normalized); err != nil {
		return errors.Wrap(err, "normalize")
	}

	if err := schema.Validate(normalized); err != nil {
		return errors.Wrap(ErrInvalidTuning, err.Error())
	}
	return nil
}

// Validate checks relations the schema cannot express
func (t Tuning) Validate() error {
	q := t.Quake
	if q.IntervalFloor > q.FirstInterval {
		return errors.Wrap(ErrInvalidTuning, "quake.interval_floor exceeds quake.first_interval")
	}
	if q.RumbleInterval > q.Duration {
		return errors.Wrap(ErrInvalidTuning, "quake.rumble_interval exceeds quake.duration")
	}
	if q.RumblePlates < 0 {
		return errors.Wrap(ErrInvalidTuning, "quake.rumble_plates is negative")
	}
	return nil
}
