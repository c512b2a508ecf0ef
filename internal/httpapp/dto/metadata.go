package dto

import "github.com/cesargomez89/airscore/internal/domain"

// MetadataRequest is the full metadata payload for a music item plus the
// label names to assign. A save always replaces the whole metadata row; an
// empty label list leaves existing labels untouched.
type MetadataRequest struct {
	Title         string   `json:"title"`
	Composer      string   `json:"composer"`
	Genre         string   `json:"genre"`
	KeySignature  string   `json:"key_signature"`
	Rating        *int     `json:"rating"`
	Difficulty    *int     `json:"difficulty"`
	TimeSignature string   `json:"time_signature"`
	PageCount     *int     `json:"page_count"`
	Labels        []string `json:"labels"`
}

func (r *MetadataRequest) Validate() []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateTitle(r.Title)...)
	errs = append(errs, validateRating(r.Rating)...)
	errs = append(errs, validateDifficulty(r.Difficulty)...)
	errs = append(errs, validatePageCount(r.PageCount)...)
	return errs
}

func (r *MetadataRequest) ToDomain() *domain.MusicMetadata {
	return &domain.MusicMetadata{
		Title:         r.Title,
		Composer:      r.Composer,
		Genre:         r.Genre,
		KeySignature:  r.KeySignature,
		Rating:        r.Rating,
		Difficulty:    r.Difficulty,
		TimeSignature: r.TimeSignature,
		PageCount:     r.PageCount,
	}
}
