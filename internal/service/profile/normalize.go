package profile

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/cardfolio/cardfolio/internal/platform/form"
)

// Validation messages, field by field.
const (
	msgNameRequired  = "Name is required"
	msgOthersStrings = "Others dictionary must have string keys and values"
	msgInvalidURL    = "Enter a valid URL."
	msgNotAFile      = "The submitted data was not a file."
	// MsgGalleryLimit rejects updates carrying too many gallery files.
	MsgGalleryLimit = "Maximum 3 gallery images allowed"
)

const galleryFieldPrefix = "gallery_"

// ValidationError collects field-level problems so a response can report all
// of them together instead of failing on the first.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("validation failed")
	for field, msgs := range e.Fields {
		b.WriteString("; ")
		b.WriteString(field)
		b.WriteString(": ")
		b.WriteString(strings.Join(msgs, ", "))
	}
	return b.String()
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

func (e *ValidationError) orNil() *ValidationError {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// NewValidationError builds a single-field validation error.
func NewValidationError(field, msg string) *ValidationError {
	e := &ValidationError{}
	e.add(field, msg)
	return e
}

// GalleryUpload is one extracted gallery file, keyed by its submitted index.
type GalleryUpload struct {
	Index int
	File  *form.File
}

// NormalizedUpdate is the Field Normalizer's output: a typed partial update
// plus the file attachments split out of the field set.
type NormalizedUpdate struct {
	Params       UpdateParams
	Gallery      []GalleryUpload
	ProfileImage *form.File
}

// optional scalar fields that pass through with only presence handling.
// Presence with an empty string is an explicit clear.
var plainFields = map[string]func(*UpdateParams) **string{
	"designation":      func(p *UpdateParams) **string { return &p.Designation },
	"email":            func(p *UpdateParams) **string { return &p.Email },
	"phone":            func(p *UpdateParams) **string { return &p.Phone },
	"whatsapp":         func(p *UpdateParams) **string { return &p.Whatsapp },
	"about":            func(p *UpdateParams) **string { return &p.About },
	"background_color": func(p *UpdateParams) **string { return &p.BackgroundColor },
	"card_color":       func(p *UpdateParams) **string { return &p.CardColor },
	"button_color":     func(p *UpdateParams) **string { return &p.ButtonColor },
}

// social URL fields validated as well-formed URLs when non-empty.
var urlFields = map[string]func(*UpdateParams) **string{
	"instagram": func(p *UpdateParams) **string { return &p.Instagram },
	"linkedin":  func(p *UpdateParams) **string { return &p.Linkedin },
	"youtube":   func(p *UpdateParams) **string { return &p.Youtube },
	"website":   func(p *UpdateParams) **string { return &p.Website },
	"twitter":   func(p *UpdateParams) **string { return &p.Twitter },
	"figma":     func(p *UpdateParams) **string { return &p.Figma },
}

// NormalizeUpdate turns a raw field set into a typed partial update.
//
// Gallery file attachments (keys gallery_<index>) are extracted into an
// indexed list and stripped from the field set so they never reach
// persistence as literal fields. Validation problems are collected per field
// and returned together; fields absent from the payload stay nil.
func NormalizeUpdate(fields form.Fields) (*NormalizedUpdate, *ValidationError) {
	out := &NormalizedUpdate{}
	verr := &ValidationError{}

	for name, value := range fields {
		if strings.HasPrefix(name, galleryFieldPrefix) {
			if upload, ok := galleryUpload(name, value); ok {
				out.Gallery = append(out.Gallery, upload)
			}
			continue
		}

		switch {
		case name == "name":
			normalizeName(value, &out.Params, verr)
		case name == "others":
			normalizeOthers(value, &out.Params, verr)
		case name == "template":
			normalizeTemplate(value, &out.Params, verr)
		case name == "profile_image":
			normalizeProfileImage(value, out, verr)
		default:
			if set, ok := plainFields[name]; ok {
				if text, isText := value.AsText(); isText {
					*set(&out.Params) = &text
				}
				continue
			}
			if set, ok := urlFields[name]; ok {
				normalizeURL(name, value, set(&out.Params), verr)
			}
			// Unknown fields are ignored.
		}
	}

	if err := verr.orNil(); err != nil {
		return nil, err
	}
	return out, nil
}

// galleryUpload extracts one gallery attachment. Keys with a malformed index
// and parts with no readable content are dropped silently.
func galleryUpload(name string, value form.Value) (GalleryUpload, bool) {
	index, err := strconv.Atoi(strings.TrimPrefix(name, galleryFieldPrefix))
	if err != nil || index < 0 {
		return GalleryUpload{}, false
	}
	file, ok := value.AsFile()
	if !ok || len(file.Data) == 0 {
		return GalleryUpload{}, false
	}
	return GalleryUpload{Index: index, File: file}, true
}

func normalizeName(value form.Value, params *UpdateParams, verr *ValidationError) {
	text, ok := value.AsText()
	if !ok {
		verr.add("name", msgNameRequired)
		return
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		verr.add("name", msgNameRequired)
		return
	}
	params.Name = &trimmed
}

// normalizeOthers parses the free-form label→url mapping. A string payload
// is decoded as JSON; decode failure or a non-object result degrades to an
// empty mapping rather than failing the request. Entries must be
// string-to-string; passing entries are trimmed and entries blank on either
// side are dropped.
func normalizeOthers(value form.Value, params *UpdateParams, verr *ValidationError) {
	text, ok := value.AsText()
	if !ok {
		empty := map[string]string{}
		params.Others = &empty
		return
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		raw = map[string]any{}
	}

	cleaned := make(map[string]string, len(raw))
	for label, v := range raw {
		link, isString := v.(string)
		if !isString {
			verr.add("others", msgOthersStrings)
			return
		}
		label = strings.TrimSpace(label)
		link = strings.TrimSpace(link)
		if label == "" || link == "" {
			continue
		}
		cleaned[label] = link
	}
	params.Others = &cleaned
}

func normalizeTemplate(value form.Value, params *UpdateParams, verr *ValidationError) {
	text, ok := value.AsText()
	if !ok {
		verr.add("template", `"" is not a valid choice.`)
		return
	}
	t := Template(text)
	if !t.Valid() {
		verr.add("template", `"`+text+`" is not a valid choice.`)
		return
	}
	params.Template = &t
}

func normalizeProfileImage(value form.Value, out *NormalizedUpdate, verr *ValidationError) {
	if file, ok := value.AsFile(); ok {
		if len(file.Data) == 0 {
			verr.add("profile_image", msgNotAFile)
			return
		}
		out.ProfileImage = file
		return
	}
	text, _ := value.AsText()
	if text == "" {
		cleared := ""
		out.Params.ProfileImage = &cleared
		return
	}
	verr.add("profile_image", msgNotAFile)
}

func normalizeURL(field string, value form.Value, target **string, verr *ValidationError) {
	text, ok := value.AsText()
	if !ok {
		verr.add(field, msgInvalidURL)
		return
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		*target = &trimmed
		return
	}
	if !validURL(trimmed) {
		verr.add(field, msgInvalidURL)
		return
	}
	*target = &trimmed
}

// validURL requires an absolute URL with a host and a web scheme.
func validURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	switch u.Scheme {
	case "http", "https", "ftp", "ftps":
	default:
		return false
	}
	return u.Host != ""
}
