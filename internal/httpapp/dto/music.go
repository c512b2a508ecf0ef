package dto

// ListQuery filters the music list. Repeated groups params combine with AND
// semantics: only items in every named group match.
type ListQuery struct {
	Groups []string `form:"groups"`
}

// ImportForm carries the non-file fields of a multipart import request.
type ImportForm struct {
	Title  string   `form:"title"`
	Groups []string `form:"groups"`
}

// SetGroupsRequest replaces the full group membership of a music item.
type SetGroupsRequest struct {
	Groups []string `json:"groups"`
}

// LabelRequest creates (or fetches) a label in the vocabulary.
type LabelRequest struct {
	Name   string `json:"name"`
	Colour string `json:"colour,omitempty"`
}

func (r *LabelRequest) Validate() []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateLabelName(r.Name)...)
	errs = append(errs, validateColour(r.Colour)...)
	return errs
}
