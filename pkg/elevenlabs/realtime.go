package elevenlabs

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const realtimeHandshakeTimeout = 10 * time.Second

// RealtimeHandlers are the caller-supplied callbacks of a realtime session.
// They are invoked from the session's read loop; a slow handler stalls the
// loop.
type RealtimeHandlers struct {
	// OnAudio receives each decoded audio chunk in arrival order.
	OnAudio func([]byte)
	// OnAlignment receives character timing when sync_alignment is enabled.
	OnAlignment func(*Alignment)
	// OnError receives read-side failures. The session does not reconnect.
	OnError func(error)
}

// RealtimeOptions configure a realtime text-to-speech session.
type RealtimeOptions struct {
	ModelID           string
	OutputFormat      string
	LanguageCode      string
	VoiceSettings     *VoiceSettings
	InactivityTimeout *int
	SyncAlignment     bool

	// MultiContext selects the multi-stream-input endpoint, where several
	// generations share one socket. ContextID labels this session's messages
	// and defaults to a fresh UUID.
	MultiContext bool
	ContextID    string

	Handlers RealtimeHandlers
}

// RealtimeSession is a live WebSocket connection to the realtime synthesis
// endpoint. Senders are fire-and-forget: no acknowledgment tracking and no
// ordering guarantee beyond the socket's in-order delivery. Writes are
// serialized internally; the session never reconnects on drop.
type RealtimeSession struct {
	conn      *websocket.Conn
	log       *Logger
	contextID string
	handlers  RealtimeHandlers

	writeMu sync.Mutex
	closed  atomic.Bool
	done    chan struct{}
}

type realtimeMessage struct {
	Text                 *string        `json:"text,omitempty"`
	TryTriggerGeneration bool           `json:"try_trigger_generation,omitempty"`
	Flush                bool           `json:"flush,omitempty"`
	VoiceSettings        *VoiceSettings `json:"voice_settings,omitempty"`
	ContextID            string         `json:"context_id,omitempty"`
	CloseContext         bool           `json:"close_context,omitempty"`
	CloseSocket          bool           `json:"close_socket,omitempty"`
}

type realtimeResponse struct {
	Audio               string     `json:"audio,omitempty"`
	IsFinal             bool       `json:"isFinal,omitempty"`
	Alignment           *Alignment `json:"alignment,omitempty"`
	NormalizedAlignment *Alignment `json:"normalizedAlignment,omitempty"`
	Error               string     `json:"error,omitempty"`
	Message             string     `json:"message,omitempty"`
}

// DialRealtime opens a realtime session for the given voice. The BOS
// (beginning-of-stream) message is sent before DialRealtime returns, so the
// session is immediately ready for SendText.
func (c *Client) DialRealtime(ctx context.Context, voiceID string, opts *RealtimeOptions) (*RealtimeSession, error) {
	if opts == nil {
		opts = &RealtimeOptions{}
	}

	endpoint := "/stream-input"
	contextID := ""
	if opts.MultiContext {
		endpoint = "/multi-stream-input"
		contextID = opts.ContextID
		if contextID == "" {
			contextID = uuid.NewString()
		}
	}

	q := url.Values{}
	if opts.ModelID != "" {
		q.Set("model_id", opts.ModelID)
	}
	if opts.OutputFormat != "" {
		q.Set("output_format", opts.OutputFormat)
	}
	if opts.LanguageCode != "" {
		q.Set("language_code", opts.LanguageCode)
	}
	if opts.InactivityTimeout != nil {
		q.Set("inactivity_timeout", strconv.Itoa(*opts.InactivityTimeout))
	}
	if opts.SyncAlignment {
		q.Set("sync_alignment", "true")
	}

	wsURL := c.cfg.WSBaseURL + "/v1/text-to-speech/" + url.PathEscape(voiceID) + endpoint
	wsURL = pathWithQuery(wsURL, q)

	header := http.Header{}
	header.Set(apiKeyHeader, c.cfg.APIKey)

	session, err := dialRealtime(ctx, wsURL, header, contextID, opts.Handlers, c.cfg.Logger)
	if err != nil {
		return nil, err
	}

	// BOS: a single space initializes the stream.
	bos := realtimeMessage{
		Text:          String(" "),
		VoiceSettings: opts.VoiceSettings,
		ContextID:     contextID,
	}
	if err := session.send(&bos); err != nil {
		session.Close()
		return nil, err
	}
	return session, nil
}

// DialSignedRealtimeURL opens a realtime session from a signed URL obtained
// out of band. The URL's embedded token is checked for expiry before dialing.
func (c *Client) DialSignedRealtimeURL(ctx context.Context, signedURL string, handlers RealtimeHandlers) (*RealtimeSession, error) {
	if IsSignedURLExpired(signedURL, 0) {
		return nil, newWebSocketError("signed URL is expired")
	}
	return dialRealtime(ctx, signedURL, nil, "", handlers, c.cfg.Logger)
}

func dialRealtime(ctx context.Context, wsURL string, header http.Header, contextID string, handlers RealtimeHandlers, log *Logger) (*RealtimeSession, error) {
	dialer := websocket.Dialer{HandshakeTimeout: realtimeHandshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, wsURL, header)
	if err != nil {
		return nil, newWebSocketError("dial failed: " + err.Error())
	}

	session := &RealtimeSession{
		conn:      conn,
		log:       log.WithComponent("realtime"),
		contextID: contextID,
		handlers:  handlers,
		done:      make(chan struct{}),
	}
	session.log.LogWSEvent("connected", map[string]interface{}{"url": wsURL})

	go session.readLoop()
	return session, nil
}

// SendText queues a text chunk for synthesis.
func (s *RealtimeSession) SendText(text string) error {
	return s.send(&realtimeMessage{
		Text:                 String(text),
		TryTriggerGeneration: true,
		ContextID:            s.contextID,
	})
}

// Flush forces generation of all buffered text.
func (s *RealtimeSession) Flush() error {
	return s.send(&realtimeMessage{
		Text:      String(" "),
		Flush:     true,
		ContextID: s.contextID,
	})
}

// Keepalive holds the connection open across input gaps.
func (s *RealtimeSession) Keepalive() error {
	return s.send(&realtimeMessage{
		Text:      String(" "),
		ContextID: s.contextID,
	})
}

// CloseContext ends one generation context on a multi-context socket without
// closing the socket itself.
func (s *RealtimeSession) CloseContext(contextID string) error {
	if contextID == "" {
		contextID = s.contextID
	}
	return s.send(&realtimeMessage{ContextID: contextID, CloseContext: true})
}

// EndInput sends the EOS (end-of-stream) message. The service finishes any
// pending generation and replies with a final message; use Wait to block for
// it.
func (s *RealtimeSession) EndInput() error {
	return s.send(&realtimeMessage{Text: String(""), ContextID: s.contextID})
}

// Wait blocks until the read loop has finished, either on a final message or
// a connection error.
func (s *RealtimeSession) Wait() {
	<-s.done
}

// Close closes the socket. Pending generations are abandoned; call EndInput
// and Wait first for a clean shutdown.
func (s *RealtimeSession) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	s.log.LogWSEvent("closed", nil)
	return s.conn.Close()
}

func (s *RealtimeSession) send(msg *realtimeMessage) error {
	if s.closed.Load() {
		return newWebSocketError("session is closed")
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.conn.WriteJSON(msg); err != nil {
		return newWebSocketError("write failed: " + err.Error())
	}
	return nil
}

func (s *RealtimeSession) readLoop() {
	defer close(s.done)

	for {
		_, message, err := s.conn.ReadMessage()
		if err != nil {
			if !s.closed.Load() && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.handleError(newWebSocketError("read failed: " + err.Error()))
			}
			return
		}

		var resp realtimeResponse
		if err := json.Unmarshal(message, &resp); err != nil {
			s.log.Warnf("realtime: dropping undecodable message: %v", err)
			continue
		}

		if resp.Error != "" {
			s.handleError(newWebSocketError(resp.Error + ": " + resp.Message))
			continue
		}

		if resp.Audio != "" && s.handlers.OnAudio != nil {
			audio, err := base64.StdEncoding.DecodeString(resp.Audio)
			if err != nil {
				s.log.Warnf("realtime: dropping undecodable audio: %v", err)
			} else {
				s.handlers.OnAudio(audio)
			}
		}

		if s.handlers.OnAlignment != nil {
			if resp.NormalizedAlignment != nil {
				s.handlers.OnAlignment(resp.NormalizedAlignment)
			} else if resp.Alignment != nil {
				s.handlers.OnAlignment(resp.Alignment)
			}
		}

		if resp.IsFinal {
			s.log.LogWSEvent("final", nil)
			return
		}
	}
}

func (s *RealtimeSession) handleError(err error) {
	if s.handlers.OnError != nil {
		s.handlers.OnError(err)
		return
	}
	s.log.WithError(err).Error("realtime session error")
}
