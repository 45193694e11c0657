package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/portfolio/internal/service"
)

type profileRequest struct {
	FullName         string   `json:"full_name"`
	Location         string   `json:"location"`
	JobTitle1        string   `json:"job_title_1"`
	JobTitle2        string   `json:"job_title_2"`
	JobTitle3        string   `json:"job_title_3"`
	JobTitle4        string   `json:"job_title_4"`
	ImageURL         string   `json:"profile_image"`
	Email            string   `json:"email"`
	Phone            string   `json:"phone"`
	LinkedIn         string   `json:"linkedin"`
	ShowEmail        *bool    `json:"show_email"`
	ShowPhone        *bool    `json:"show_phone"`
	ShowLinkedIn     *bool    `json:"show_linkedin"`
	ShortBio         string   `json:"short_bio"`
	LongBio          string   `json:"full_bio"`
	Skills           []string `json:"skills"`
	Languages        []string `json:"languages"`
	Education        string   `json:"education"`
	ExecutiveSummary string   `json:"executive_summary"`
}

func (r profileRequest) input() service.ProfileInput {
	return service.ProfileInput{
		FullName:         r.FullName,
		Location:         r.Location,
		JobTitles:        []string{r.JobTitle1, r.JobTitle2, r.JobTitle3, r.JobTitle4},
		ImageURL:         r.ImageURL,
		Email:            r.Email,
		Phone:            r.Phone,
		LinkedIn:         r.LinkedIn,
		ShowEmail:        r.ShowEmail,
		ShowPhone:        r.ShowPhone,
		ShowLinkedIn:     r.ShowLinkedIn,
		ShortBio:         r.ShortBio,
		LongBio:          r.LongBio,
		Skills:           r.Skills,
		Languages:        r.Languages,
		Education:        r.Education,
		ExecutiveSummary: r.ExecutiveSummary,
	}
}

// GetProfile returns the full profile record for editing.
func (a *API) GetProfile(c *gin.Context) {
	profile, err := a.profiles.GetOrCreate(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "failed to load profile")
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// UpdateProfile saves the singleton profile.
func (a *API) UpdateProfile(c *gin.Context) {
	var req profileRequest
	if !bindJSON(c, &req, "invalid profile payload") {
		return
	}
	profile, err := a.profiles.Save(c.Request.Context(), req.input())
	if err != nil {
		respondServiceError(c, err, "failed to save profile")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "profile saved", "profile": profile})
}
