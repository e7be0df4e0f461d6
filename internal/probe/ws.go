package probe

import (
	"context"
	"crypto/tls"
	"fmt"

	"github.com/gorilla/websocket"

	"svctopo/internal/domain"
)

// wsProbe dials a WebSocket/WSS endpoint, sends a ping frame and waits for
// any response frame before the deadline. WSS honors sslVerify.
func wsProbe(ctx context.Context, spec *domain.ServiceSpec) domain.ProbeOutcome {
	scheme := "ws"
	if spec.Method == domain.MethodWSS {
		scheme = "wss"
	}
	url := fmt.Sprintf("%s://%s:%d%s", scheme, spec.Host, spec.Port, spec.HealthcheckPath)

	dialer := websocket.Dialer{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: !spec.SSLVerify},
	}

	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return deadOnErr(fmt.Errorf("websocket dial: %w", err))
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetReadDeadline(deadline)
		conn.SetWriteDeadline(deadline)
	}

	pong := make(chan struct{}, 1)
	conn.SetPongHandler(func(string) error {
		select {
		case pong <- struct{}{}:
		default:
		}
		return nil
	})

	if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
		return deadOnErr(fmt.Errorf("websocket ping: %w", err))
	}

	readErr := make(chan error, 1)
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				readErr <- err
				return
			}
			select {
			case pong <- struct{}{}:
			default:
			}
		}
	}()

	select {
	case <-pong:
		return alive()
	case err := <-readErr:
		return deadOnErr(fmt.Errorf("websocket read: %w", err))
	case <-ctx.Done():
		return deadOnErr(fmt.Errorf("websocket: %w", ctx.Err()))
	}
}
