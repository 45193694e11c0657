package view

import (
	"fmt"
	htmlstd "html"
	"html/template"
	"net/url"
	"path"
	"regexp"
	"strconv"
	"strings"
)

const (
	videoAspectLandscape = "16:9"
	videoAspectPortrait  = "9:16"
)

// VideoPlayer selects how a video is shown.
type VideoPlayer int

const (
	// VideoNative plays the file in a <video> element.
	VideoNative VideoPlayer = iota
	// VideoEmbed shows the host's player in an iframe.
	VideoEmbed
)

// Video describes a playable video resolved from a content item's media URL.
type Video struct {
	Player   VideoPlayer
	Platform string
	Source   string
	EmbedURL string
	MimeType string
	Aspect   string
}

var (
	videoTimePattern    = regexp.MustCompile(`(?i)(\d+)(h|m|s)`)
	nativeVideoMimeType = map[string]string{
		".mp4":  "video/mp4",
		".m4v":  "video/mp4",
		".mov":  "video/quicktime",
		".webm": "video/webm",
		".ogv":  "video/ogg",
	}
)

// ResolveVideo classifies a media URL. Cloudinary-hosted URLs and direct
// video files play natively; YouTube and Vimeo links become their embed
// players; any other http(s) URL is embedded as given.
func ResolveVideo(raw string) (Video, bool) {
	trimmed := strings.TrimSpace(raw)
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed == nil {
		return Video{}, false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return Video{}, false
	}
	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return Video{}, false
	}

	ext := strings.ToLower(path.Ext(parsed.Path))
	if isHostOrSubdomain(host, "cloudinary.com") || nativeVideoMimeType[ext] != "" {
		mime := nativeVideoMimeType[ext]
		if mime == "" {
			mime = "video/mp4"
		}
		return Video{
			Player:   VideoNative,
			Platform: "cloudinary",
			Source:   trimmed,
			MimeType: mime,
			Aspect:   videoAspectLandscape,
		}, true
	}

	if video, ok := parseYouTube(parsed, trimmed); ok {
		return video, true
	}
	if video, ok := parseVimeo(parsed, trimmed); ok {
		return video, true
	}
	return Video{
		Player:   VideoEmbed,
		Platform: "external",
		Source:   trimmed,
		EmbedURL: parsed.String(),
		Aspect:   videoAspectLandscape,
	}, true
}

func parseYouTube(u *url.URL, source string) (Video, bool) {
	host := strings.ToLower(u.Hostname())
	var videoID string

	switch {
	case host == "youtu.be":
		videoID = strings.Trim(strings.TrimPrefix(u.Path, "/"), "/")
	case isHostOrSubdomain(host, "youtube.com"), isHostOrSubdomain(host, "youtube-nocookie.com"):
		p := strings.Trim(u.Path, "/")
		switch {
		case p == "watch":
			videoID = u.Query().Get("v")
		case strings.HasPrefix(p, "shorts/"):
			videoID = strings.TrimPrefix(p, "shorts/")
		case strings.HasPrefix(p, "embed/"):
			videoID = strings.TrimPrefix(p, "embed/")
		case strings.HasPrefix(p, "live/"):
			videoID = strings.TrimPrefix(p, "live/")
		}
	default:
		return Video{}, false
	}
	if i := strings.Index(videoID, "/"); i >= 0 {
		videoID = videoID[:i]
	}
	if videoID == "" {
		return Video{}, false
	}

	values := url.Values{}
	values.Set("rel", "0")
	values.Set("modestbranding", "1")
	values.Set("playsinline", "1")
	if start := youTubeStart(u); start > 0 {
		values.Set("start", strconv.Itoa(start))
	}

	aspect := videoAspectLandscape
	if strings.HasPrefix(strings.Trim(u.Path, "/"), "shorts/") {
		aspect = videoAspectPortrait
	}
	return Video{
		Player:   VideoEmbed,
		Platform: "youtube",
		Source:   source,
		EmbedURL: "https://www.youtube.com/embed/" + url.PathEscape(videoID) + "?" + values.Encode(),
		Aspect:   aspect,
	}, true
}

func youTubeStart(u *url.URL) int {
	query := u.Query()
	if value := query.Get("start"); value != "" {
		return parseVideoTime(value)
	}
	if value := query.Get("t"); value != "" {
		return parseVideoTime(value)
	}
	return 0
}

// parseVideoTime accepts plain seconds or 1h2m3s style offsets.
func parseVideoTime(value string) int {
	trimmed := strings.TrimSpace(value)
	if seconds, err := strconv.Atoi(trimmed); err == nil {
		if seconds > 0 {
			return seconds
		}
		return 0
	}

	total := 0
	for _, match := range videoTimePattern.FindAllStringSubmatch(trimmed, -1) {
		n, err := strconv.Atoi(match[1])
		if err != nil || n <= 0 {
			continue
		}
		switch strings.ToLower(match[2]) {
		case "h":
			total += n * 3600
		case "m":
			total += n * 60
		case "s":
			total += n
		}
	}
	return total
}

func parseVimeo(u *url.URL, source string) (Video, bool) {
	host := strings.ToLower(u.Hostname())
	if !isHostOrSubdomain(host, "vimeo.com") {
		return Video{}, false
	}
	var videoID string
	for _, segment := range strings.Split(strings.Trim(u.Path, "/"), "/") {
		if _, err := strconv.Atoi(segment); err == nil {
			videoID = segment
			break
		}
	}
	if videoID == "" {
		return Video{}, false
	}
	return Video{
		Player:   VideoEmbed,
		Platform: "vimeo",
		Source:   source,
		EmbedURL: "https://player.vimeo.com/video/" + videoID,
		Aspect:   videoAspectLandscape,
	}, true
}

// VideoHTML renders the player markup for v.
func VideoHTML(v Video, title string) template.HTML {
	switch v.Player {
	case VideoNative:
		return template.HTML(fmt.Sprintf(
			`<div class="content-media content-video" data-video-platform="%s"><video controls preload="metadata" playsinline><source src="%s" type="%s">Your browser does not support the video element.</video></div>`,
			htmlstd.EscapeString(v.Platform),
			htmlstd.EscapeString(v.Source),
			htmlstd.EscapeString(v.MimeType),
		))
	case VideoEmbed:
		return template.HTML(fmt.Sprintf(
			`<div class="content-media video-embed" data-video-embed="true" data-video-platform="%s" data-video-aspect="%s" data-video-source="%s">`+
				`<iframe src="%s" title="%s" loading="lazy" allow="%s" allowfullscreen frameborder="0" referrerpolicy="strict-origin-when-cross-origin"></iframe>`+
				`</div>`,
			htmlstd.EscapeString(v.Platform),
			htmlstd.EscapeString(v.Aspect),
			htmlstd.EscapeString(v.Source),
			htmlstd.EscapeString(v.EmbedURL),
			htmlstd.EscapeString(videoTitle(v.Platform, title)),
			videoAllowAttribute,
		))
	}
	return ""
}

const videoAllowAttribute = "accelerometer; clipboard-write; encrypted-media; gyroscope; picture-in-picture; web-share"

func videoTitle(platform, title string) string {
	if title != "" {
		return title
	}
	switch platform {
	case "youtube":
		return "YouTube video player"
	case "vimeo":
		return "Vimeo video player"
	default:
		return "Video player"
	}
}

func isHostOrSubdomain(host, domain string) bool {
	host = strings.ToLower(strings.TrimSpace(host))
	domain = strings.ToLower(strings.TrimSpace(domain))
	if host == "" || domain == "" {
		return false
	}
	return host == domain || strings.HasSuffix(host, "."+domain)
}

// safeMediaURL accepts http(s) URLs and site-relative paths.
func safeMediaURL(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}
	if strings.HasPrefix(trimmed, "/") && !strings.HasPrefix(trimmed, "//") {
		return trimmed, true
	}
	parsed, err := url.Parse(trimmed)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return "", false
	}
	return trimmed, true
}
