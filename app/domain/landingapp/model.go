package landingapp

import (
	"encoding/json"
	"errors"

	"github.com/jcpaschoal/agenda/app/sdk/errs"
	"github.com/jcpaschoal/agenda/business/domain/landingbus"
	"github.com/jcpaschoal/agenda/business/types/section"
)

// Landing is the full landing page configuration keyed by section name.
type Landing map[string]json.RawMessage

// Encode implements the web.Encoder interface.
func (l Landing) Encode() ([]byte, string, error) {
	data, err := json.Marshal(l)
	return data, "application/json", err
}

func toAppLanding(bus landingbus.Sections) Landing {
	app := make(Landing, len(bus))
	for k, v := range bus {
		app[k.String()] = v
	}
	return app
}

// UpdateLanding replaces every section of the landing page.
type UpdateLanding map[string]json.RawMessage

// Decode implements the web.Decoder interface.
func (app *UpdateLanding) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

func toBusSections(app UpdateLanding) (landingbus.Sections, error) {
	var fieldErrors errs.FieldErrors

	sections := make(landingbus.Sections, len(app))
	for k, v := range app {
		key, err := section.Parse(k)
		if err != nil {
			fieldErrors.Add(k, err)
			continue
		}
		sections[key] = v
	}

	if fieldErrors != nil {
		return nil, fieldErrors.ToError()
	}

	return sections, nil
}

// UpdateSection carries the new content of one section.
type UpdateSection struct {
	Data json.RawMessage
}

// Decode implements the web.Decoder interface.
func (app *UpdateSection) Decode(data []byte) error {
	if !json.Valid(data) {
		return errors.New("section content is not valid JSON")
	}

	app.Data = append(json.RawMessage(nil), data...)
	return nil
}
