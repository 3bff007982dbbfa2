// Package schema validates JSON documents that cross a trust boundary: the
// user and task records read back from local storage, and the suggestion
// list produced by the language model. Documents are checked against
// embedded JSON Schemas before they are decoded into Go types, so a record
// written by an older or foreign build is rejected instead of half-parsed.
package schema

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/dayscribe/internal/client/models"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var files embed.FS

const baseURL = "https://dayscribe.local/schemas/"

// ErrInvalidDocument is wrapped by every error returned from this package.
var ErrInvalidDocument = errors.New("invalid document")

// ValidationError is one schema violation with its JSON location.
type ValidationError struct {
	Path    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidDocument
}

var (
	userSchema        = mustCompile("user.schema.json")
	tasksSchema       = mustCompile("tasks.schema.json")
	suggestionsSchema = mustCompile("suggestions.schema.json")
)

func mustCompile(name string) *jsonschema.Schema {
	data, err := files.ReadFile("schemas/" + name)
	if err != nil {
		panic(fmt.Sprintf("schema %s: %v", name, err))
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(baseURL+name, bytes.NewReader(data)); err != nil {
		panic(fmt.Sprintf("schema %s: %v", name, err))
	}
	return compiler.MustCompile(baseURL + name)
}

// DecodeUser validates data as a persisted user record and decodes it.
func DecodeUser(data []byte) (*models.User, error) {
	var u models.User
	if err := decode(userSchema, data, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// DecodeTasks validates data as a persisted task collection and decodes it.
// A JSON null decodes to an empty collection.
func DecodeTasks(data []byte) ([]models.Task, error) {
	if string(bytes.TrimSpace(data)) == "null" {
		return []models.Task{}, nil
	}

	var tasks []models.Task
	if err := decode(tasksSchema, data, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

// DecodeSuggestions validates data as {"suggestedTasks": [...]} and returns
// the list.
func DecodeSuggestions(data []byte) ([]string, error) {
	var out struct {
		SuggestedTasks []string `json:"suggestedTasks"`
	}
	if err := decode(suggestionsSchema, data, &out); err != nil {
		return nil, err
	}
	if out.SuggestedTasks == nil {
		out.SuggestedTasks = []string{}
	}
	return out.SuggestedTasks, nil
}

func decode(s *jsonschema.Schema, data []byte, dst any) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	if err := s.Validate(doc); err != nil {
		return firstViolation(err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return nil
}

// firstViolation walks the cause tree down to the first leaf, which carries
// the most specific message.
func firstViolation(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return &ValidationError{
		Path:    pointerToPath(ve.InstanceLocation),
		Message: ve.Message,
	}
}

func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	return strings.ReplaceAll(ptr, "/", ".")
}
