package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/portfolio/internal/config"
	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/logging"
	"github.com/portfolio/internal/service"
)

// Demo data generator for a fresh database.
func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("failed to read .env")
	}
	cfg := config.Load()
	logging.Setup(cfg.LogLevel, cfg.GinMode)

	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatal().Err(err).Msg("database init failed")
	}

	if err := seedDemoData(context.Background(), db.DB); err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}
	log.Info().Str("database", cfg.DatabasePath).Msg("demo data ready")
}

func seedDemoData(ctx context.Context, gdb *gorm.DB) error {
	categories := service.NewCategoryService(gdb)
	existing, err := categories.ListCategories(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Info().Int("categories", len(existing)).Msg("catalog already populated, skipping")
		return nil
	}

	contentIDs, err := createTestCatalog(ctx, gdb)
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	if err := createTestCollection(ctx, gdb, contentIDs); err != nil {
		return fmt.Errorf("collection: %w", err)
	}
	if err := createTestResume(ctx, gdb); err != nil {
		return fmt.Errorf("resume: %w", err)
	}
	if err := createTestProfile(ctx, gdb); err != nil {
		return fmt.Errorf("profile: %w", err)
	}
	if err := createTestDownloads(ctx, gdb); err != nil {
		return fmt.Errorf("downloads: %w", err)
	}
	return nil
}

type demoItem struct {
	contentType db.ContentType
	title       string
	subtitle    string
	body        string
	audioURL    string
	publication string
	date        string
}

type demoSection struct {
	category    string
	subcategory string
	items       []demoItem
}

var demoSections = []demoSection{
	{
		category:    "Writing",
		subcategory: "Features",
		items: []demoItem{
			{
				contentType: db.ContentTypeArticle,
				title:       "The River Keepers",
				subtitle:    "A season with the volunteers who test the water every morning",
				body:        `{"blocks":[{"type":"header","data":{"text":"Before dawn","level":2}},{"type":"paragraph","data":{"text":"The first sample is taken at <b>5:40</b>, when the mist still sits on the water."}},{"type":"quote","data":{"text":"Nobody pays us to care.","caption":"Maria, volunteer since 2011"}}]}`,
				publication: "The Valley Review",
				date:        "2023-09-14",
			},
			{
				contentType: db.ContentTypeArticle,
				title:       "Night Shift at the Port",
				subtitle:    "Cranes, containers and the people between them",
				body:        `{"blocks":[{"type":"paragraph","data":{"text":"The port never closes. It only changes crews."}},{"type":"list","data":{"style":"unordered","items":["12 cranes","400 workers","one canteen"]}}]}`,
				publication: "Harbour Weekly",
				date:        "2022-03-02",
			},
		},
	},
	{
		category:    "Writing",
		subcategory: "Essays",
		items: []demoItem{
			{
				contentType: db.ContentTypeArticle,
				title:       "On Slow News",
				body:        `{"blocks":[{"type":"paragraph","data":{"text":"Some stories take a year to report and a minute to read."}},{"type":"delimiter","data":{}},{"type":"paragraph","data":{"text":"This is an argument for the year."}}]}`,
				date:        "2024-01-20",
			},
		},
	},
	{
		category:    "Media",
		subcategory: "Video",
		items: []demoItem{
			{
				contentType: db.ContentTypeVideo,
				title:       "Flood Season, Explained",
				body:        "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
				date:        "2023-05-11",
			},
		},
	},
	{
		category:    "Media",
		subcategory: "Audio",
		items: []demoItem{
			{
				contentType: db.ContentTypeAudio,
				title:       "Interview: The Last Ferryman",
				audioURL:    "https://media.example.com/audio/ferryman.mp3",
				date:        "2021-11-30",
			},
		},
	},
	{
		category:    "Media",
		subcategory: "Photography",
		items: []demoItem{
			{
				contentType: db.ContentTypeImage,
				title:       "Low Tide",
				body:        "https://images.unsplash.com/photo-1507525428034-b723cf961d3e?auto=format&fit=crop&w=1600&q=80",
				date:        "2020-08-04",
			},
		},
	},
}

func createTestCatalog(ctx context.Context, gdb *gorm.DB) ([]string, error) {
	categories := service.NewCategoryService(gdb)
	content := service.NewContentService(gdb)

	categoryIDs := make(map[string]string)
	var contentIDs []string
	for _, section := range demoSections {
		categoryID, ok := categoryIDs[section.category]
		if !ok {
			category, err := categories.CreateCategory(ctx, service.CategoryInput{Name: section.category})
			if err != nil {
				return nil, err
			}
			categoryID = category.ID
			categoryIDs[section.category] = categoryID
		}

		subcategory, err := categories.CreateSubcategory(ctx, service.SubcategoryInput{CategoryID: categoryID, Name: section.subcategory})
		if err != nil {
			return nil, err
		}

		for _, item := range section.items {
			created, err := content.Create(ctx, service.ContentInput{
				SubcategoryID:   subcategory.ID,
				Type:            item.contentType,
				Title:           item.title,
				Subtitle:        item.subtitle,
				Body:            item.body,
				AudioURL:        item.audioURL,
				AuthorName:      "Alex Morgan",
				PublicationName: item.publication,
				PublicationDate: item.date,
				DownloadEnabled: item.contentType == db.ContentTypeAudio,
			})
			if err != nil {
				return nil, fmt.Errorf("%s: %w", item.title, err)
			}
			contentIDs = append(contentIDs, created.ID)
		}
	}

	log.Info().Int("categories", len(categoryIDs)).Int("items", len(contentIDs)).Msg("catalog created")
	return contentIDs, nil
}

func createTestCollection(ctx context.Context, gdb *gorm.DB, contentIDs []string) error {
	collections := service.NewCollectionService(gdb)
	collection, err := collections.Create(ctx, service.CollectionInput{
		Name:        "Best of",
		Description: "A few pieces I would hand to a new editor.",
	})
	if err != nil {
		return err
	}

	for i, id := range contentIDs {
		if i%2 == 1 {
			continue
		}
		if _, err := collections.AddContent(ctx, collection.ID, id, nil); err != nil {
			return err
		}
	}
	log.Info().Str("slug", collection.Slug).Msg("collection created")
	return nil
}

func createTestResume(ctx context.Context, gdb *gorm.DB) error {
	resume := service.NewResumeService(gdb)

	jobs, err := resume.CreateEntryType(ctx, service.ResumeEntryTypeInput{Name: "Jobs", Icon: "💼"})
	if err != nil {
		return err
	}
	education, err := resume.CreateEntryType(ctx, service.ResumeEntryTypeInput{Name: "Education", Icon: "🎓"})
	if err != nil {
		return err
	}

	month := func(year int, m time.Month) time.Time {
		return time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
	}
	end := month(2019, time.June)
	studyEnd := month(2015, time.June)
	entries := []service.ResumeEntryInput{
		{EntryTypeID: jobs.ID, Title: "Senior Reporter", Subtitle: "The Valley Review", StartDate: month(2019, time.July), Description: "Long-form features on water and infrastructure.", Featured: true},
		{EntryTypeID: jobs.ID, Title: "Staff Writer", Subtitle: "Harbour Weekly", StartDate: month(2015, time.September), EndDate: &end, Description: "City desk and the port beat."},
		{EntryTypeID: education.ID, Title: "MA Journalism", Subtitle: "City University", StartDate: month(2013, time.September), EndDate: &studyEnd},
	}
	for _, entry := range entries {
		if _, err := resume.CreateEntry(ctx, entry); err != nil {
			return fmt.Errorf("%s: %w", entry.Title, err)
		}
	}
	log.Info().Int("entries", len(entries)).Msg("resume created")
	return nil
}

func createTestProfile(ctx context.Context, gdb *gorm.DB) error {
	show, hide := true, false
	_, err := service.NewProfileService(gdb).Save(ctx, service.ProfileInput{
		FullName:     "Alex Morgan",
		Location:     "Lisbon, Portugal",
		JobTitles:    []string{"Reporter", "Editor"},
		Email:        "alex@example.com",
		Phone:        "+351 555 0100",
		LinkedIn:     "https://www.linkedin.com/in/alex-morgan",
		ShowEmail:    &show,
		ShowPhone:    &hide,
		ShowLinkedIn: &show,
		ShortBio:     "Reporter covering water, ports and the people who run them.",
		LongBio:      "I have spent a decade reporting on **infrastructure** and the communities around it.",
		Skills:       []string{"Investigative reporting", "Data journalism", "Audio production"},
		Languages:    []string{"English", "Portuguese"},
	})
	return err
}

func createTestDownloads(ctx context.Context, gdb *gorm.DB) error {
	downloads := service.NewDownloadService(gdb)
	for _, input := range []service.DownloadInput{
		{FileType: db.FileTypeResumeFull, FileURL: "https://files.example.com/alex-morgan-resume.pdf"},
		{FileType: db.FileTypePortfolio, FileURL: "https://files.example.com/alex-morgan-portfolio.pdf"},
	} {
		if _, err := downloads.Save(ctx, input); err != nil {
			return err
		}
	}
	return nil
}
