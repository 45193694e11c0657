package view

import (
	"html/template"
	"strings"

	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/service"
)

// ContactLink is one visible contact line on the profile card.
type ContactLink struct {
	Kind  string
	Label string
	Href  template.URL
	Icon  template.HTML
}

type contactIconAsset struct {
	Kind string
	SVG  string
}

var (
	contactIconDefinitions = []contactIconAsset{
		{Kind: "email", SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round" aria-hidden="true"><path d="M21.75 6.75v10.5a2.25 2.25 0 0 1-2.25 2.25h-15A2.25 2.25 0 0 1 2.25 17.25V6.75M21.75 6.75A2.25 2.25 0 0 0 19.5 4.5h-15A2.25 2.25 0 0 0 2.25 6.75v.243c0 .781.405 1.506 1.071 1.916l7.5 4.615a2.25 2.25 0 0 0 2.157 0l7.5-4.615a2.25 2.25 0 0 0 1.072-1.916V6.75"/></svg>`},
		{Kind: "phone", SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round" aria-hidden="true"><path d="M2.25 6.75c0 8.284 6.716 15 15 15h2.25a2.25 2.25 0 0 0 2.25-2.25v-1.372c0-.516-.351-.966-.852-1.091l-4.423-1.106c-.44-.11-.902.055-1.173.417l-.97 1.293c-.282.376-.769.542-1.21.38a12.035 12.035 0 0 1-7.143-7.143c-.162-.441.004-.928.38-1.21l1.293-.97c.363-.271.527-.734.417-1.173L6.963 3.102a1.125 1.125 0 0 0-1.091-.852H4.5A2.25 2.25 0 0 0 2.25 4.5v2.25Z"/></svg>`},
		{Kind: "linkedin", SVG: `<svg viewBox="0 0 24 24" fill="currentColor" aria-hidden="true"><path d="M20.447 20.452h-3.554v-5.569c0-1.328-.027-3.037-1.852-3.037-1.853 0-2.136 1.445-2.136 2.939v5.667H9.351V9h3.414v1.561h.046c.477-.9 1.637-1.85 3.37-1.85 3.601 0 4.267 2.37 4.267 5.455v6.286zM5.337 7.433a2.062 2.062 0 1 1 0-4.125 2.062 2.062 0 0 1 0 4.125zM7.119 20.452H3.555V9h3.564v11.452zM22.225 0H1.771C.792 0 0 .774 0 1.729v20.542C0 23.227.792 24 1.771 24h20.451C23.2 24 24 23.227 24 22.271V1.729C24 .774 23.2 0 22.222 0h.003z"/></svg>`},
	}
	defaultContactIcon = `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round" aria-hidden="true"><path d="M17.982 18.725C16.612 16.918 14.442 15.75 12 15.75s-4.612 1.168-5.982 2.975M17.982 18.725A8.97 8.97 0 0 0 21 12c0-4.971-4.03-9-9-9s-9 4.029-9 9a8.97 8.97 0 0 0 3.018 6.725M17.982 18.725C16.392 20.14 14.296 21 12 21s-4.392-.86-5.982-2.275M15 9.75a3 3 0 1 1-6 0 3 3 0 0 1 6 0Z"/></svg>`
	contactIconLookup  = func() map[string]string {
		lookup := make(map[string]string, len(contactIconDefinitions))
		for _, icon := range contactIconDefinitions {
			lookup[icon.Kind] = icon.SVG
		}
		return lookup
	}()
)

// ContactIconSVG resolves the icon for a contact kind, falling back to a
// generic person icon.
func ContactIconSVG(kind string) string {
	if svg, ok := contactIconLookup[strings.ToLower(strings.TrimSpace(kind))]; ok {
		return svg
	}
	return defaultContactIcon
}

// ProfileView is the template model of the profile card and about page.
type ProfileView struct {
	FullName         string
	Initials         string
	Location         string
	JobTitles        []string
	ImageURL         string
	Contacts         []ContactLink
	ShortBio         string
	LongBio          template.HTML
	Skills           []string
	Languages        []string
	Education        template.HTML
	ExecutiveSummary template.HTML
}

// BuildProfileView applies the visibility flags and renders the long-form
// fields as Markdown.
func BuildProfileView(p db.Profile) ProfileView {
	card := service.CardFor(p)
	view := ProfileView{
		FullName:         card.FullName,
		Initials:         initials(card.FullName),
		Location:         card.Location,
		JobTitles:        card.JobTitles,
		ImageURL:         linkOrEmpty(card.ImageURL),
		ShortBio:         card.ShortBio,
		LongBio:          Markdown(p.LongBio),
		Skills:           p.Skills,
		Languages:        p.Languages,
		Education:        Markdown(p.Education),
		ExecutiveSummary: Markdown(p.ExecutiveSummary),
	}
	if card.Email != "" {
		view.Contacts = append(view.Contacts, contact("email", card.Email, "mailto:"+card.Email))
	}
	if card.Phone != "" {
		view.Contacts = append(view.Contacts, contact("phone", card.Phone, "tel:"+strings.ReplaceAll(card.Phone, " ", "")))
	}
	if card.LinkedIn != "" {
		if href := linkOrEmpty(card.LinkedIn); href != "" {
			view.Contacts = append(view.Contacts, contact("linkedin", "LinkedIn", href))
		}
	}
	return view
}

func contact(kind, label, href string) ContactLink {
	return ContactLink{Kind: kind, Label: label, Href: template.URL(href), Icon: template.HTML(ContactIconSVG(kind))}
}

func initials(name string) string {
	var b strings.Builder
	for _, field := range strings.Fields(name) {
		for _, r := range field {
			b.WriteString(strings.ToUpper(string(r)))
			break
		}
		if b.Len() >= 2 {
			break
		}
	}
	return b.String()
}
