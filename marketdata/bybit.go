package marketdata

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/kprice-io/lob-engine"
	"github.com/kprice-io/lob-engine/feed"
)

// BybitFeed is a thin adapter over Bybit's public spot orderbook
// websocket stream, translating each depth-delta message into
// feed.Event values scaled through a Scaler. It is illustrative: a real
// deployment would also consume the REST snapshot endpoint to
// initialize a "snapshot" sequence number and handle resync, which is
// out of scope here (see package doc).
//
// Grounded on original_source/include/exchange/bybit_public_ws.hpp
// (host/port/path defaults, channel subscription, run-until-max-messages
// shape) translated from its libwebsocketpp-style run() into Go's
// gorilla/websocket dial/read loop.
type BybitFeed struct {
	url     string
	scaler  Scaler
	channel string // e.g. "orderbook.50.BTCUSDT"
}

// NewBybitFeed builds a feed for one Bybit spot orderbook depth channel.
func NewBybitFeed(channel string, scaler Scaler) *BybitFeed {
	return &BybitFeed{
		url:     "wss://stream.bybit.com/v5/public/spot",
		scaler:  scaler,
		channel: channel,
	}
}

type bybitSubscribe struct {
	Op   string   `json:"op"`
	Args []string `json:"args"`
}

type bybitDepthMessage struct {
	Topic string `json:"topic"`
	Type  string `json:"type"` // "snapshot" or "delta"
	Data  struct {
		Bids [][2]string `json:"b"`
		Asks [][2]string `json:"a"`
	} `json:"data"`
}

// Run dials the feed, subscribes to the configured channel, and invokes
// handler for every Add event decoded from incoming depth messages until
// ctx is canceled or the connection drops. A depth level reported with
// zero quantity is Bybit's convention for "remove this price level" and
// has no direct Event translation in this adapter's scope (an engine
// fed by book-replacement semantics would need a RemoveLevel($price)
// primitive the core order book does not expose), so such levels are
// dropped.
func (f *BybitFeed) Run(ctx context.Context, handler func(feed.Event)) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, f.url, nil)
	if err != nil {
		return fmt.Errorf("marketdata: dial bybit: %w", err)
	}
	defer conn.Close()

	sub := bybitSubscribe{Op: "subscribe", Args: []string{f.channel}}
	if err := conn.WriteJSON(sub); err != nil {
		return fmt.Errorf("marketdata: subscribe: %w", err)
	}

	go func() {
		<-ctx.Done()
		_ = conn.SetReadDeadline(time.Now())
	}()

	for {
		var msg bybitDepthMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("marketdata: read: %w", err)
		}
		if msg.Topic == "" {
			continue // subscription ack or pong
		}

		for _, lvl := range msg.Data.Bids {
			if ev, ok := f.levelToEvent(lvl, true); ok {
				handler(ev)
			}
		}
		for _, lvl := range msg.Data.Asks {
			if ev, ok := f.levelToEvent(lvl, false); ok {
				handler(ev)
			}
		}
	}
}

func (f *BybitFeed) levelToEvent(lvl [2]string, isBid bool) (feed.Event, bool) {
	qty, err := f.scaler.Quantity(lvl[1])
	if err != nil || qty <= 0 {
		return feed.Event{}, false // removal or unparseable; not representable as Add (see Run's doc)
	}
	price, err := f.scaler.Price(lvl[0])
	if err != nil {
		return feed.Event{}, false
	}

	side := book.Sell
	if isBid {
		side = book.Buy
	}
	return feed.Event{Type: feed.Add, Side: side, Price: price, Qty: qty}, true
}
