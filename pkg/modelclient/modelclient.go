package modelclient

import (
	"ProjectMimic/internal/entity"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// ModelKind identifies one of the two pre-trained model services.
type ModelKind string

const (
	FaceLocator          ModelKind = "FACE_LOCATOR"
	ExpressionClassifier ModelKind = "EXPRESSION_CLASSIFIER"
)

var (
	ErrModelsNotReady = errors.New("model services are not ready")
	ErrNotConnected   = errors.New("model connection lost")
)

// IModelClient is the narrow contract over the external detection models.
// Any concrete implementation only has to satisfy Detect.
type IModelClient interface {
	// LoadAll dials both model services concurrently. Readiness is reached
	// only when both succeed; a failed load is terminal for the instance.
	LoadAll() error
	// Ready reports whether both models finished loading. The flag moves
	// false to true at most once and never reverts.
	Ready() bool
	// Detect runs one single-face detection-plus-expression pass.
	Detect(frame []byte) (*entity.DetectionResult, error)
	CloseConnections()
}

type modelClient struct {
	log *logrus.Logger

	mu       sync.Mutex
	faceConn *websocket.Conn
	exprConn *websocket.Conn

	loadOnce sync.Once
	loadErr  error

	readyMu sync.RWMutex
	ready   bool

	pingInterval time.Duration
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func New(log *logrus.Logger) IModelClient {
	return &modelClient{
		log:          log,
		pingInterval: 30 * time.Second,
		readTimeout:  10 * time.Second,
		writeTimeout: 5 * time.Second,
	}
}

// locateResponse is the face-locator wire format.
type locateResponse struct {
	Found       bool        `json:"found"`
	Box         *entity.Box `json:"box,omitempty"`
	FrameWidth  float64     `json:"frame_width"`
	FrameHeight float64     `json:"frame_height"`
}

// classifyResponse is the expression-classifier wire format.
type classifyResponse struct {
	Expressions entity.Expressions `json:"expressions"`
}

func (c *modelClient) LoadAll() error {
	c.loadOnce.Do(func() {
		type dialResult struct {
			kind ModelKind
			conn *websocket.Conn
			err  error
		}

		results := make(chan dialResult, 2)
		for _, kind := range []ModelKind{FaceLocator, ExpressionClassifier} {
			go func(kind ModelKind) {
				conn, err := c.dial(kind)
				results <- dialResult{kind: kind, conn: conn, err: err}
			}(kind)
		}

		var faceConn, exprConn *websocket.Conn
		var firstErr error
		for i := 0; i < 2; i++ {
			res := <-results
			if res.err != nil {
				c.log.Errorf("Failed to load %s model: %v", res.kind, res.err)
				if firstErr == nil {
					firstErr = res.err
				}
				continue
			}
			if res.kind == FaceLocator {
				faceConn = res.conn
			} else {
				exprConn = res.conn
			}
		}

		if firstErr != nil {
			// Fail closed: one model alone is useless, drop both.
			if faceConn != nil {
				faceConn.Close()
			}
			if exprConn != nil {
				exprConn.Close()
			}
			c.loadErr = firstErr
			return
		}

		c.mu.Lock()
		c.faceConn = faceConn
		c.exprConn = exprConn
		c.mu.Unlock()

		c.readyMu.Lock()
		c.ready = true
		c.readyMu.Unlock()

		go c.keepAlive(FaceLocator)
		go c.keepAlive(ExpressionClassifier)

		c.log.Info("Face locator and expression classifier models loaded")
	})

	return c.loadErr
}

func (c *modelClient) Ready() bool {
	c.readyMu.RLock()
	defer c.readyMu.RUnlock()
	return c.ready
}

func (c *modelClient) dial(kind ModelKind) (*websocket.Conn, error) {
	url := modelURL(kind)

	dialer := *websocket.DefaultDialer
	dialer.HandshakeTimeout = 10 * time.Second

	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s at %s: %w", kind, url, err)
	}

	conn.SetPingHandler(func(appData string) error {
		err := conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(c.writeTimeout))
		if err != nil {
			c.log.Errorf("Error sending pong to %s: %v", kind, err)
		}
		return nil
	})

	return conn, nil
}

func (c *modelClient) Detect(frame []byte) (*entity.DetectionResult, error) {
	if !c.Ready() {
		return nil, ErrModelsNotReady
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var locate locateResponse
	if err := c.roundTrip(&c.faceConn, frame, &locate); err != nil {
		return nil, fmt.Errorf("face locator: %w", err)
	}

	surface := entity.Surface{Width: locate.FrameWidth, Height: locate.FrameHeight}
	if !locate.Found || locate.Box == nil {
		return entity.NoFace(surface), nil
	}

	var classify classifyResponse
	if err := c.roundTrip(&c.exprConn, frame, &classify); err != nil {
		return nil, fmt.Errorf("expression classifier: %w", err)
	}

	return &entity.DetectionResult{
		FaceFound:   true,
		Box:         locate.Box,
		Expressions: classify.Expressions,
		Frame:       surface,
	}, nil
}

// roundTrip sends one binary frame and decodes the JSON reply. On a
// transport error the connection is closed and nilled; readiness is not
// reset, later passes surface ErrNotConnected until the process restarts.
func (c *modelClient) roundTrip(connRef **websocket.Conn, frame []byte, out interface{}) error {
	conn := *connRef
	if conn == nil {
		return ErrNotConnected
	}

	conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
		conn.Close()
		*connRef = nil
		return fmt.Errorf("error sending frame: %w", err)
	}

	conn.SetReadDeadline(time.Now().Add(c.readTimeout))
	_, message, err := conn.ReadMessage()
	if err != nil {
		conn.Close()
		*connRef = nil
		return fmt.Errorf("error reading response: %w", err)
	}

	conn.SetReadDeadline(time.Time{})
	conn.SetWriteDeadline(time.Time{})

	if err := json.Unmarshal(message, out); err != nil {
		return fmt.Errorf("error unmarshaling response: %w", err)
	}

	return nil
}

func (c *modelClient) keepAlive(kind ModelKind) {
	ticker := time.NewTicker(c.pingInterval)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()

		var conn *websocket.Conn
		if kind == FaceLocator {
			conn = c.faceConn
		} else {
			conn = c.exprConn
		}

		if conn == nil {
			c.mu.Unlock()
			return
		}

		err := conn.WriteControl(
			websocket.PingMessage,
			[]byte{},
			time.Now().Add(c.writeTimeout),
		)
		if err != nil {
			c.log.Warnf("Ping failed for %s, marking connection as dead: %v", kind, err)
			conn.Close()
			if kind == FaceLocator {
				c.faceConn = nil
			} else {
				c.exprConn = nil
			}
			c.mu.Unlock()
			return
		}

		c.mu.Unlock()
	}
}

func (c *modelClient) CloseConnections() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.faceConn != nil {
		c.faceConn.Close()
		c.faceConn = nil
	}

	if c.exprConn != nil {
		c.exprConn.Close()
		c.exprConn = nil
	}
}

func modelURL(kind ModelKind) string {
	switch kind {
	case FaceLocator:
		url := os.Getenv("MODEL_FACE_URL")
		if url == "" {
			url = "ws://localhost:8000/models/face-locator/ws"
		}
		return url
	case ExpressionClassifier:
		url := os.Getenv("MODEL_EXPRESSION_URL")
		if url == "" {
			url = "ws://localhost:8000/models/expression/ws"
		}
		return url
	default:
		return ""
	}
}
