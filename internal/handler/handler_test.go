package handler

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"FarmSentinel/internal/model"
)

func fixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "parser", "testdata", name))
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	return string(data)
}

type recordingStats struct {
	added    []model.WalletAddCoinMessage
	deleted  []model.WalletDelCoinMessage
	harv     []model.HarvesterActivityMessage
	partials []model.PartialMessage
	blocks   []model.BlockMessage
	sps      []model.FinishedSignagePointMessage
}

func (r *recordingStats) ConsumeWalletMessages(added []model.WalletAddCoinMessage, deleted []model.WalletDelCoinMessage) {
	r.added = append(r.added, added...)
	r.deleted = append(r.deleted, deleted...)
}

func (r *recordingStats) ConsumeHarvesterMessages(msgs []model.HarvesterActivityMessage) {
	r.harv = append(r.harv, msgs...)
}

func (r *recordingStats) ConsumePartialMessages(msgs []model.PartialMessage) {
	r.partials = append(r.partials, msgs...)
}

func (r *recordingStats) ConsumeBlockMessages(msgs []model.BlockMessage) {
	r.blocks = append(r.blocks, msgs...)
}

func (r *recordingStats) ConsumeSignagePointMessages(msgs []model.FinishedSignagePointMessage) {
	r.sps = append(r.sps, msgs...)
}

func TestWalletAddCoinHandler_Nominal(t *testing.T) {
	stats := &recordingStats{}
	h := NewWalletAddCoinHandler(0, stats)

	events := h.Handle(fixture(t, "wallet_add_coin_nominal.txt"))
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	e := events[0]
	if e.Type != model.EventTypeUser || e.Priority != model.PriorityLow || e.Service != model.ServiceWallet {
		t.Errorf("unexpected event metadata: %+v", e)
	}
	if e.Message != "Just received 2 XCH 💰" {
		t.Errorf("unexpected message %q", e.Message)
	}
	if len(stats.added) != 2 || len(stats.deleted) != 0 {
		t.Errorf("expected 2 added and 0 deleted forwarded, got %d and %d", len(stats.added), len(stats.deleted))
	}
}

func TestWalletDelCoinHandler_Nominal(t *testing.T) {
	stats := &recordingStats{}
	h := NewWalletDelCoinHandler(0, stats)

	events := h.Handle(fixture(t, "wallet_del_coin_nominal.txt"))
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Message != "Just sent 1.75 XCH 💸" {
		t.Errorf("unexpected message %q", events[0].Message)
	}
	if events[0].Service != model.ServiceWallet {
		t.Errorf("unexpected service %s", events[0].Service)
	}
	if len(stats.deleted) != 3 || len(stats.added) != 0 {
		t.Errorf("expected 3 deleted and 0 added forwarded, got %d and %d", len(stats.deleted), len(stats.added))
	}
}

func TestWalletHandlers_SmallValues(t *testing.T) {
	tests := []struct {
		name    string
		handler Handler
		fixture string
		want    string
	}{
		{"add", NewWalletAddCoinHandler(0, nil), "wallet_add_coin_small_values.txt", "Just received 0.004849173605 XCH 💰"},
		{"del", NewWalletDelCoinHandler(0, nil), "wallet_del_coin_small_values.txt", "Just sent 0.004849173605 XCH 💸"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := tt.handler.Handle(fixture(t, tt.fixture))
			if len(events) != 1 || events[0].Message != tt.want {
				t.Errorf("expected one event %q, got %+v", tt.want, events)
			}
		})
	}
}

func TestWalletHandlers_MinimumFilter(t *testing.T) {
	const minMojos = 500000000000
	stats := &recordingStats{}

	add := NewWalletAddCoinHandler(minMojos, stats)
	if events := add.Handle(fixture(t, "wallet_add_coin_small_values.txt")); len(events) != 0 {
		t.Errorf("expected the small receive to be filtered, got %+v", events)
	}
	del := NewWalletDelCoinHandler(minMojos, stats)
	if events := del.Handle(fixture(t, "wallet_del_coin_small_values.txt")); len(events) != 0 {
		t.Errorf("expected the small send to be filtered, got %+v", events)
	}
	// filtered coins still count towards the digest
	if len(stats.added) != 1 || len(stats.deleted) != 1 {
		t.Errorf("expected filtered coins forwarded, got %d added, %d deleted", len(stats.added), len(stats.deleted))
	}
}

func TestWalletEvent_Threshold(t *testing.T) {
	const threshold = 1000
	tests := []struct {
		total uint64
		want  int
	}{
		{0, 0},
		{threshold - 1, 0},
		{threshold, 0},
		{threshold + 1, 1},
	}
	for _, tt := range tests {
		if got := walletEvent(tt.total, threshold, "received", "%s"); len(got) != tt.want {
			t.Errorf("total %d: expected %d events, got %d", tt.total, tt.want, len(got))
		}
	}
	if got := walletEvent(0, 0, "received", "%s"); len(got) != 0 {
		t.Errorf("zero total with zero threshold should not notify, got %+v", got)
	}
}

func TestWalletHandler_EmptyInput(t *testing.T) {
	stats := &recordingStats{}
	h := NewWalletAddCoinHandler(0, stats)
	if events := h.Handle(""); len(events) != 0 {
		t.Errorf("expected no events, got %+v", events)
	}
}

func TestHarvesterActivityHandler(t *testing.T) {
	tests := []struct {
		name      string
		maxSearch float64
		want      []model.EventPriority
	}{
		{"proof only", 15, []model.EventPriority{model.PriorityLow}},
		{"proof and slow lookup", 5, []model.EventPriority{model.PriorityLow, model.PriorityNormal}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := &recordingStats{}
			h := NewHarvesterActivityHandler(tt.maxSearch, stats)
			events := h.Handle(fixture(t, "harvester_activity_nominal.txt"))
			if len(events) != len(tt.want) {
				t.Fatalf("expected %d events, got %+v", len(tt.want), events)
			}
			for i, e := range events {
				if e.Priority != tt.want[i] || e.Service != model.ServiceHarvester {
					t.Errorf("event %d: unexpected metadata %+v", i, e)
				}
			}
			if events[0].Message != "Found 1 proof(s)! 🧾" {
				t.Errorf("unexpected message %q", events[0].Message)
			}
			if len(stats.harv) != 3 {
				t.Errorf("expected 3 messages forwarded, got %d", len(stats.harv))
			}
		})
	}
}

func TestHarvesterActivityHandler_PlotsDecrease(t *testing.T) {
	h := NewHarvesterActivityHandler(15, nil)
	h.Handle(fixture(t, "harvester_activity_nominal.txt"))

	line := "2022-06-17T10:01:00.000 harvester chia.harvester.harvester: INFO     0 plots were eligible for farming 1a2b3c4d5e... Found 0 proofs. Time: 0.10000 s. Total 40 plots\n"
	events := h.Handle(line)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %+v", events)
	}
	if events[0].Priority != model.PriorityHigh || !strings.Contains(events[0].Message, "from 43 to 40") {
		t.Errorf("unexpected event %+v", events[0])
	}
}

func TestPartialHandler_ForwardsOnly(t *testing.T) {
	stats := &recordingStats{}
	h := NewPartialHandler(stats)
	if events := h.Handle(fixture(t, "partial_nominal.txt")); len(events) != 0 {
		t.Errorf("expected no events, got %+v", events)
	}
	if len(stats.partials) != 3 {
		t.Errorf("expected 3 partials forwarded, got %d", len(stats.partials))
	}
}

func TestBlockHandler(t *testing.T) {
	stats := &recordingStats{}
	h := NewBlockHandler(stats)
	events := h.Handle(fixture(t, "block_nominal.txt"))
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %+v", events)
	}
	if events[0].Message != "Farmed 1 block(s)! 🍀" || events[0].Service != model.ServiceFullNode {
		t.Errorf("unexpected event %+v", events[0])
	}
	if len(stats.blocks) != 1 {
		t.Errorf("expected 1 block forwarded, got %d", len(stats.blocks))
	}
}

func TestFinishedSignagePointHandler(t *testing.T) {
	stats := &recordingStats{}
	h := NewFinishedSignagePointHandler(stats)
	events := h.Handle(fixture(t, "finished_signage_point_nominal.txt"))
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %+v", events)
	}
	if events[0].Priority != model.PriorityNormal || !strings.Contains(events[0].Message, "Skipped 1 signage point(s)") {
		t.Errorf("unexpected event %+v", events[0])
	}
	if len(stats.sps) != 3 {
		t.Errorf("expected 3 signage points forwarded, got %d", len(stats.sps))
	}

	// the last point carries over to the next pass: 4 -> 5 is contiguous
	next := "2022-06-17T10:00:37.600 full_node chia.full_node.full_node: INFO     ⏲️  Finished signage point 5/64: CC: aa RC: bb\n"
	if events := h.Handle(next); len(events) != 0 {
		t.Errorf("expected no events, got %+v", events)
	}
}
