package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"mediarelay/internal/httputil"
	"mediarelay/internal/media"
	"mediarelay/internal/relay"
)

// requestParams are the inputs a route may take from the query string or,
// for POST, from a JSON body. Query values win.
type requestParams struct {
	URL      string `json:"url"`
	Q        string `json:"q"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Filename string `json:"filename"`
	Type     string `json:"type"`
}

func bindParams(c *gin.Context) requestParams {
	var p requestParams
	if c.Request.Method == http.MethodPost && c.Request.ContentLength != 0 {
		// A body that is not JSON leaves p empty; the query still applies.
		_ = c.ShouldBindJSON(&p)
	}
	q := c.Request.URL.Query()
	pick := func(dst *string, key string) {
		if v := strings.TrimSpace(q.Get(key)); v != "" {
			*dst = v
		} else {
			*dst = strings.TrimSpace(*dst)
		}
	}
	pick(&p.URL, "url")
	pick(&p.Q, "q")
	pick(&p.Title, "title")
	pick(&p.Artist, "artist")
	pick(&p.Filename, "filename")
	pick(&p.Type, "type")
	return p
}

func (s *Server) handleHome(c *gin.Context) {
	endpoints := gin.H{}
	for _, rt := range s.Routes() {
		endpoints[rt.Path] = rt.Description
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "Online",
		"message":   "media relay is running",
		"version":   s.version,
		"endpoints": endpoints,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleVideoLookup(c *gin.Context) {
	p := bindParams(c)
	if p.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "URL parameter required"})
		return
	}

	res, err := s.videos.Lookup(c.Request.Context(), p.URL)
	if err != nil {
		failStatus(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": res})
}

func (s *Server) handleMusicSearch(c *gin.Context) {
	p := bindParams(c)
	if p.Q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Parameter 'q' required"})
		return
	}

	tracks, err := s.music.Search(c.Request.Context(), p.Q)
	switch {
	case err == nil:
	case errors.Is(err, media.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"message": "No songs found",
			"data":    []media.TrackSummary{},
			"results": []media.TrackSummary{},
		})
		return
	default:
		fail(c, err, http.StatusBadGateway)
		return
	}

	base := s.baseURL(c)
	for i := range tracks {
		t := &tracks[i]
		t.DownloadURL = base + "/mp3down/download?" + url.Values{
			"url":    {t.OriginalURL},
			"title":  {t.Title},
			"artist": {t.Artist},
		}.Encode()
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "results": tracks})
}

func (s *Server) handleMusicDownload(c *gin.Context) {
	p := bindParams(c)
	s.serveTrack(c, p.URL, s.trackName(p.Title, p.Artist))
}

func (s *Server) handleMusicGetLink(c *gin.Context) {
	p := bindParams(c)
	name := fmt.Sprintf("Music_%d.mp3", s.now().Unix())
	if p.Title != "" || p.Artist != "" {
		name = s.trackName(p.Title, p.Artist)
	}
	s.serveTrack(c, p.URL, name)
}

// trackName builds "<title> - <artist>.mp3" with placeholders for blanks.
func (s *Server) trackName(title, artist string) string {
	if title == "" {
		title = "Unknown Title"
	}
	if artist == "" {
		artist = "Unknown Artist"
	}
	return s.safe(title) + " - " + s.safe(artist) + ".mp3"
}

func (s *Server) serveTrack(c *gin.Context, trackURL, fileName string) {
	if trackURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Parameter 'url' required"})
		return
	}

	resp, err := s.music.Download(c.Request.Context(), trackURL)
	if err != nil {
		fail(c, err, http.StatusBadGateway)
		return
	}
	n, err := relay.Relay(c.Writer, resp.Body, "audio/mpeg", fileName)
	s.logRelay(c, fileName, n, err)
}

func (s *Server) handleStreamContent(c *gin.Context) {
	p := bindParams(c)
	if p.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL parameter required"})
		return
	}

	kind := p.Type
	if kind == "" {
		kind = "mp4"
	}
	contentType, ext := mediaFormat(kind)

	name := p.Filename
	if name == "" {
		name = fmt.Sprintf("download_%d", s.now().Unix())
	}
	name = s.safe(name)
	if !strings.HasSuffix(strings.ToLower(name), ext) {
		name += ext
	}

	resp, err := s.streams.Stream(c.Request.Context(), p.URL)
	if err != nil {
		fail(c, err, http.StatusBadGateway)
		return
	}
	st := &relay.Stream{Body: resp.Body, ContentType: contentType, FileName: name, NoCache: true}
	n, err := st.Serve(c.Writer)
	s.logRelay(c, name, n, err)
}

// logRelay records the outcome of a relay. Failures are only logged: the
// status line is already on the wire.
func (s *Server) logRelay(c *gin.Context, fileName string, n int64, err error) {
	log := logFor(c).WithFields(logrus.Fields{"file": fileName, "bytes": n})
	if err != nil {
		_ = c.Error(err)
		log.WithError(err).Warn("stream interrupted")
		return
	}
	log.Debug("stream complete")
}

// mediaFormat maps the type parameter to a content type and file extension.
// Only the exact values "video" and "image" are recognised; anything else,
// including the "mp4" default, is audio.
func mediaFormat(kind string) (contentType, ext string) {
	switch kind {
	case "video":
		return "video/mp4", ".mp4"
	case "image":
		return "image/jpeg", ".jpg"
	default:
		return "audio/mpeg", ".mp3"
	}
}

func (s *Server) safe(name string) string {
	return httputil.SafeFilename(name, s.cfg.FilenameMaxLength)
}

