package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"relay_bot/internal/modules/config"
	healthsvc "relay_bot/internal/modules/health/service"
	"relay_bot/pkg/logger"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
)

// Mark is one mark-price update for the configured symbol.
type Mark struct {
	Symbol string
	Price  float64
	Time   time.Time
}

// Client streams futures mark prices over websocket for the paper
// facade.
type Client struct {
	cfg      *config.Config
	wsDialer *websocket.Dialer
	health   *healthsvc.State
}

func NewClient(cfg *config.Config, health *healthsvc.State) *Client {
	return &Client{
		cfg:      cfg,
		wsDialer: &websocket.Dialer{},
		health:   health,
	}
}

// Stream opens the <symbol>@markPrice@1s stream and republishes marks
// until ctx is cancelled, reconnecting with a short backoff.
func (c *Client) Stream(ctx context.Context) <-chan Mark {
	ch := make(chan Mark)

	go func() {
		defer close(ch)

		symbol := strings.ToLower(c.cfg.Market.Symbol)
		url := fmt.Sprintf("%s/%s@markPrice@1s", c.cfg.Market.WSURL, symbol)

		for {
			logger.Info("[WS] mark connect %s", symbol)
			conn, _, err := c.wsDialer.Dial(url, nil)
			if err != nil {
				logger.Warn("[WS] mark dial error: %v", err)
				select {
				case <-ctx.Done():
					return
				case <-time.After(time.Second):
				}
				continue
			}
			c.health.SetWSConnected(true)

			for {
				_, msg, err := conn.ReadMessage()
				if err != nil {
					logger.Warn("[WS] mark read error: %v", err)
					_ = conn.Close()
					c.health.SetWSConnected(false)
					break
				}

				var frame struct {
					Event  string `json:"e"`
					TimeMs int64  `json:"E"`
					Symbol string `json:"s"`
					Price  string `json:"p"`
				}
				if err := sonic.Unmarshal(msg, &frame); err != nil {
					continue
				}
				if frame.Event != "markPriceUpdate" {
					continue
				}

				px, err := strconv.ParseFloat(frame.Price, 64)
				if err != nil || px <= 0 {
					continue
				}

				mark := Mark{
					Symbol: frame.Symbol,
					Price:  px,
					Time:   time.UnixMilli(frame.TimeMs),
				}
				c.health.TouchMark(mark.Time)

				select {
				case ch <- mark:
				case <-ctx.Done():
					_ = conn.Close()
					c.health.SetWSConnected(false)
					return
				}
			}

			select {
			case <-ctx.Done():
				return
			default:
				time.Sleep(time.Second)
			}
		}
	}()

	return ch
}
