package planner

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/BerylCAtieno/stratyx-planner/internal/calendar"
	"github.com/BerylCAtieno/stratyx-planner/internal/models"
)

// ValidationError describes why a generator response was rejected.
type ValidationError struct {
	Kind   string
	Fields []string
	Err    error
}

func (e *ValidationError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("%s: %s response failed validation: %s", ErrInvalidResponse, e.Kind, strings.Join(e.Fields, ", "))
	}
	return fmt.Sprintf("%s: %s response: %v", ErrInvalidResponse, e.Kind, e.Err)
}

func (e *ValidationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidResponse}
	}
	return []error{ErrInvalidResponse, e.Err}
}

// stripFences drops a markdown code fence the model sometimes wraps JSON in.
func stripFences(raw []byte) []byte {
	trimmed := bytes.TrimSpace(raw)
	if !bytes.HasPrefix(trimmed, []byte("```")) {
		return trimmed
	}
	if nl := bytes.IndexByte(trimmed, '\n'); nl >= 0 {
		trimmed = trimmed[nl+1:]
	}
	trimmed = bytes.TrimSuffix(bytes.TrimSpace(trimmed), []byte("```"))
	return bytes.TrimSpace(trimmed)
}

func decodeStrict(kind string, raw []byte, v any) error {
	raw = stripFences(raw)
	if len(raw) == 0 {
		return &ValidationError{Kind: kind, Err: errors.New("empty body")}
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &ValidationError{Kind: kind, Err: err}
	}
	return nil
}

func check(kind string, v any) error {
	err := models.Validator().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Kind: kind, Err: err}
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
	}
	return &ValidationError{Kind: kind, Fields: fields}
}

// freshPosts applies the lifecycle defaults to newly generated posts.
func freshPosts(posts []models.PostItem) {
	for i := range posts {
		posts[i].Status = models.StatusPending
	}
}

// DecodePlan parses and validates a full plan returned by the model. Repeated
// post ids are re-keyed so every post stays addressable.
func DecodePlan(raw []byte) (*models.MarketingPlan, error) {
	var plan models.MarketingPlan
	if err := decodeStrict("plan", raw, &plan); err != nil {
		return nil, err
	}
	freshPosts(plan.Calendar)
	if err := check("plan", plan); err != nil {
		return nil, err
	}
	plan.Calendar = calendar.Append(nil, plan.Calendar)
	return &plan, nil
}

type postList struct {
	Posts []models.PostItem `validate:"dive"`
}

// DecodePosts parses and validates a calendar extension.
func DecodePosts(raw []byte) ([]models.PostItem, error) {
	var posts []models.PostItem
	if err := decodeStrict("posts", raw, &posts); err != nil {
		return nil, err
	}
	freshPosts(posts)
	if err := check("posts", postList{Posts: posts}); err != nil {
		return nil, err
	}
	return posts, nil
}

// DecodePalette keeps the well-formed hex colours of a palette response.
func DecodePalette(raw []byte) ([]string, error) {
	var colors []string
	if err := decodeStrict("palette", raw, &colors); err != nil {
		return nil, err
	}
	valid := make([]string, 0, len(colors))
	for _, c := range colors {
		c = strings.TrimSpace(c)
		if models.Validator().Var(c, "hexcolor") == nil {
			valid = append(valid, strings.ToUpper(c))
		}
	}
	if len(valid) == 0 {
		return nil, &ValidationError{Kind: "palette", Err: errors.New("no hex colours")}
	}
	return valid, nil
}
