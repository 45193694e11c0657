package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"gorm.io/gorm"

	"github.com/portfolio/internal/db"
)

// ErrProfileInvalidInput is returned when profile fields fail validation.
var ErrProfileInvalidInput = errors.New("invalid profile input")

// ProfileService maintains the singleton profile row.
type ProfileService struct {
	db *gorm.DB
}

// NewProfileService creates a ProfileService.
func NewProfileService(gdb *gorm.DB) *ProfileService {
	return &ProfileService{db: gdb}
}

// ProfileInput holds every editable profile field. Nil visibility flags keep
// their stored value.
type ProfileInput struct {
	FullName         string
	Location         string
	JobTitles        []string
	ImageURL         string
	Email            string
	Phone            string
	LinkedIn         string
	ShowEmail        *bool
	ShowPhone        *bool
	ShowLinkedIn     *bool
	ShortBio         string
	LongBio          string
	Skills           []string
	Languages        []string
	Education        string
	ExecutiveSummary string
}

func (in ProfileInput) normalize() ProfileInput {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Location = strings.TrimSpace(in.Location)
	titles := make([]string, 0, len(in.JobTitles))
	for _, title := range in.JobTitles {
		titles = append(titles, strings.TrimSpace(title))
	}
	in.JobTitles = titles
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.LinkedIn = strings.TrimSpace(in.LinkedIn)
	in.ShortBio = strings.TrimSpace(in.ShortBio)
	in.LongBio = strings.TrimSpace(in.LongBio)
	in.Skills = trimAll(in.Skills)
	in.Languages = trimAll(in.Languages)
	in.Education = strings.TrimSpace(in.Education)
	in.ExecutiveSummary = strings.TrimSpace(in.ExecutiveSummary)
	return in
}

// Validate checks the profile fields.
func (in ProfileInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.FullName, validation.RuneLength(0, 120)),
		validation.Field(&in.JobTitles, validation.Length(0, 4).Error("at most four job titles")),
		validation.Field(&in.Email, is.EmailFormat),
		validation.Field(&in.Phone, validation.RuneLength(0, 64)),
		validation.Field(&in.LinkedIn, is.URL),
	)
}

// ProfileCard is the public business card. Contact fields are empty when
// their visibility flag is off.
type ProfileCard struct {
	FullName  string   `json:"full_name"`
	Location  string   `json:"location"`
	JobTitles []string `json:"job_titles"`
	ImageURL  string   `json:"profile_image"`
	Email     string   `json:"email,omitempty"`
	Phone     string   `json:"phone,omitempty"`
	LinkedIn  string   `json:"linkedin,omitempty"`
	ShortBio  string   `json:"short_bio"`
}

// GetOrCreate returns the profile row, inserting a default one when the
// table is empty. Contact fields default to visible.
func (s *ProfileService) GetOrCreate(ctx context.Context) (*db.Profile, error) {
	tx := s.db.WithContext(ctx)
	var profile db.Profile
	err := tx.Order("created_at asc").First(&profile).Error
	if err == nil {
		return &profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	profile = db.Profile{ShowEmail: true, ShowPhone: true, ShowLinkedIn: true}
	if err := tx.Create(&profile).Error; err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return &profile, nil
}

// Save writes input onto the singleton profile.
func (s *ProfileService) Save(ctx context.Context, input ProfileInput) (*db.Profile, error) {
	input = input.normalize()
	if err := input.Validate(); err != nil {
		return nil, invalidInput(ErrProfileInvalidInput, err)
	}

	profile, err := s.GetOrCreate(ctx)
	if err != nil {
		return nil, err
	}

	titles := make([]string, 4)
	copy(titles, input.JobTitles)
	profile.FullName = input.FullName
	profile.Location = input.Location
	profile.JobTitle1, profile.JobTitle2, profile.JobTitle3, profile.JobTitle4 = titles[0], titles[1], titles[2], titles[3]
	profile.ImageURL = input.ImageURL
	profile.Email = input.Email
	profile.Phone = input.Phone
	profile.LinkedIn = input.LinkedIn
	if input.ShowEmail != nil {
		profile.ShowEmail = *input.ShowEmail
	}
	if input.ShowPhone != nil {
		profile.ShowPhone = *input.ShowPhone
	}
	if input.ShowLinkedIn != nil {
		profile.ShowLinkedIn = *input.ShowLinkedIn
	}
	profile.ShortBio = input.ShortBio
	profile.LongBio = input.LongBio
	profile.Skills = input.Skills
	profile.Languages = input.Languages
	profile.Education = input.Education
	profile.ExecutiveSummary = input.ExecutiveSummary

	if err := s.db.WithContext(ctx).Save(profile).Error; err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return profile, nil
}

// PublicCard builds the card shown to visitors.
func (s *ProfileService) PublicCard(ctx context.Context) (ProfileCard, error) {
	profile, err := s.GetOrCreate(ctx)
	if err != nil {
		return ProfileCard{}, err
	}
	return CardFor(*profile), nil
}

// CardFor applies the visibility flags of p.
func CardFor(p db.Profile) ProfileCard {
	card := ProfileCard{
		FullName:  p.FullName,
		Location:  p.Location,
		JobTitles: p.JobTitles(),
		ImageURL:  p.ImageURL,
		ShortBio:  p.ShortBio,
	}
	if p.ShowEmail {
		card.Email = p.Email
	}
	if p.ShowPhone {
		card.Phone = p.Phone
	}
	if p.ShowLinkedIn {
		card.LinkedIn = p.LinkedIn
	}
	return card
}
