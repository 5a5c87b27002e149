// Package speech runs the local browser bridge.
//
// Terminals have no microphone or camera access, so IRIS serves a small
// page on localhost that uses the browser's Web Speech API for dictation
// and getUserMedia for camera capture. Final transcripts arrive over a
// websocket, captures over a plain POST, and both are forwarded into the
// TUI event loop.
package speech

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"iris/config"
	"iris/model"
)

// Notify delivers a bridge event into the TUI event loop. It is satisfied
// by (*tea.Program).Send.
type Notify func(msg interface{})

// Bridge is the local HTTP/websocket server the browser page talks to.
type Bridge struct {
	addr   string
	app    *fiber.App
	notify Notify
}

// inboundEvent is one JSON frame from the browser page.
type inboundEvent struct {
	Type string `json:"type"` // "transcript"
	Text string `json:"text"`
}

// NewBridge creates the bridge bound to addr. Events are forwarded through
// notify; nothing is delivered until Start is called.
func NewBridge(addr string, notify Notify) *Bridge {
	if addr == "" {
		addr = config.DefaultBridgeAddr
	}

	b := &Bridge{
		addr:   addr,
		notify: notify,
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		// Camera frames are JPEG blobs, allow a few MB
		BodyLimit: 8 * 1024 * 1024,
	})

	app.Get("/", b.handleIndex)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(b.handleWS))

	app.Post("/capture", b.handleCapture)

	b.app = app
	return b
}

// Addr returns the address the bridge listens on.
func (b *Bridge) Addr() string {
	return b.addr
}

// URL returns the address as something the user can open.
func (b *Bridge) URL() string {
	return "http://" + b.addr
}

// Start runs the listener. It blocks, so callers run it in a goroutine; a
// listen failure is forwarded as a BridgeErrorMsg so the TUI can tell the
// user typing still works.
func (b *Bridge) Start() {
	if err := b.app.Listen(b.addr); err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Bridge] listen failed: %v", err)
		}
		b.notify(model.BridgeErrorMsg{Err: err})
	}
}

// Shutdown stops the listener.
func (b *Bridge) Shutdown() error {
	return b.app.Shutdown()
}

func (b *Bridge) handleIndex(c *fiber.Ctx) error {
	c.Type("html")
	return c.SendString(indexPage)
}

// handleWS reads dictation frames until the page disconnects. Only final
// transcripts are sent by the page; interim results never leave the browser.
func (b *Bridge) handleWS(ws *websocket.Conn) {
	defer ws.Close()

	if config.DebugLog != nil {
		config.DebugLog.Printf("[Bridge] websocket connected from %s", ws.RemoteAddr())
	}

	for {
		_, msg, err := ws.ReadMessage()
		if err != nil {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[Bridge] websocket closed: %v", err)
			}
			return
		}

		b.handleFrame(msg)
	}
}

// handleFrame parses one websocket frame and forwards it when it is a
// usable transcript. Malformed frames are dropped.
func (b *Bridge) handleFrame(msg []byte) bool {
	var ev inboundEvent
	if err := json.Unmarshal(msg, &ev); err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Bridge] bad frame: %v", err)
		}
		return false
	}

	if ev.Type != "transcript" || ev.Text == "" {
		return false
	}

	b.notify(model.TranscriptMsg{Text: ev.Text})
	return true
}

// handleCapture accepts a JPEG camera frame, persists it to the cache temp
// dir, and forwards the file path to the TUI.
func (b *Bridge) handleCapture(c *fiber.Ctx) error {
	data := c.Body()
	if len(data) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "empty body"})
	}

	// The body slice belongs to fiber's request buffer and is reused once
	// this handler returns, so the frame must hit disk before anything is
	// handed to another goroutine. Each capture gets its own file.
	path := config.GetCaptureFilePath(uuid.NewString())
	if err := model.SaveCapture(data, path); err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Bridge] capture write failed: %v", err)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "capture write failed"})
	}

	b.notify(model.CaptureMsg{Path: path})
	return c.JSON(fiber.Map{"status": "ok", "bytes": len(data)})
}
