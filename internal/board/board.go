package board

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/vv-omkareshwar/Task-Management-App/internal/domain"
)

// MoveState tracks a single drag gesture through the reconciliation state
// machine.
type MoveState int

const (
	// MoveIdle means the gesture ended where it started; nothing happened.
	MoveIdle MoveState = iota
	// MoveOptimistic means the local board reflects the move but the server
	// has not confirmed it yet.
	MoveOptimistic
	// MoveConfirmed means the server accepted the mutation; local state
	// already matches, so no further action is needed.
	MoveConfirmed
	// MoveRolledBack means the mutation failed and the board was reconciled
	// back to the authoritative server state.
	MoveRolledBack
)

func (s MoveState) String() string {
	switch s {
	case MoveIdle:
		return "Idle"
	case MoveOptimistic:
		return "Optimistic"
	case MoveConfirmed:
		return "Confirmed"
	case MoveRolledBack:
		return "RolledBack"
	}
	return fmt.Sprintf("MoveState(%d)", int(s))
}

// Move is the outcome of one drag gesture.
type Move struct {
	TaskID int64
	From   domain.Status
	To     domain.Status
	State  MoveState
}

// Board holds the client-side Kanban view: the user's tasks partitioned by
// status column. The board is optimistic: a move mutates local state before
// the server answers, and a failed mutation forces a full authoritative
// refetch rather than leaving the divergence in place. Moves are serialized;
// a second move of the same card simply supersedes the earlier state.
type Board struct {
	client *Client

	mu        sync.Mutex
	columns   map[domain.Status][]Task
	stale     bool
	outOfSync bool
}

// New creates an empty board backed by the given client. Call Refresh to
// load the initial state.
func New(client *Client) *Board {
	return &Board{
		client:  client,
		columns: make(map[domain.Status][]Task),
		stale:   true,
	}
}

// Refresh replaces the entire local state with the server's task set. This
// is the authoritative resync path: replace, never merge.
func (b *Board) Refresh(ctx context.Context) error {
	tasks, err := b.client.ListTasks(ctx)

	b.mu.Lock()
	defer b.mu.Unlock()

	if err != nil {
		b.outOfSync = true
		return fmt.Errorf("refresh board: %w", err)
	}

	b.replaceLocked(tasks)
	return nil
}

// Column returns a copy of the tasks currently shown in the given column.
func (b *Board) Column(status domain.Status) []Task {
	b.mu.Lock()
	defer b.mu.Unlock()

	tasks := b.columns[status]
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}

// MarkStale requests a full refetch on the next Refresh, independent of any
// individual move. Used after operations like task creation.
func (b *Board) MarkStale() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stale = true
}

// Stale reports whether a full refetch has been requested.
func (b *Board) Stale() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stale
}

// OutOfSync reports whether the last reconciliation attempt failed, leaving
// local state possibly divergent from the server. Callers should surface
// this to the user rather than pretend the board is current.
func (b *Board) OutOfSync() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.outOfSync
}

// Move applies a drag of the given task to the destination column. The
// local board is patched immediately (Optimistic), then the server mutation
// is issued. On success the move is Confirmed and local state is already
// correct. On any failure the move is RolledBack: the board refetches the
// authoritative task set, and if even that fails it is flagged out of sync.
func (b *Board) Move(ctx context.Context, taskID int64, to domain.Status) (Move, error) {
	b.mu.Lock()

	task, from, ok := b.findLocked(taskID)
	if !ok {
		b.mu.Unlock()
		return Move{}, fmt.Errorf("task %d not on board", taskID)
	}

	move := Move{TaskID: taskID, From: from, To: to}
	if from == to {
		// Dropped back into its own column: nothing to do.
		b.mu.Unlock()
		move.State = MoveIdle
		return move, nil
	}

	// Optimistic local patch, applied before the network round trip.
	b.removeLocked(taskID, from)
	task.Status = string(to)
	b.columns[to] = append(b.columns[to], task)
	move.State = MoveOptimistic
	b.mu.Unlock()

	if err := b.client.UpdateStatus(ctx, taskID, to); err != nil {
		slog.Warn("task move rejected, resyncing board", "task", taskID, "error", err)
		move.State = MoveRolledBack
		if refreshErr := b.Refresh(ctx); refreshErr != nil {
			return move, fmt.Errorf("move failed and resync failed: %w", refreshErr)
		}
		return move, err
	}

	move.State = MoveConfirmed
	return move, nil
}

func (b *Board) replaceLocked(tasks []Task) {
	columns := make(map[domain.Status][]Task, len(domain.Statuses))
	for _, task := range tasks {
		status := domain.Status(task.Status)
		columns[status] = append(columns[status], task)
	}
	b.columns = columns
	b.stale = false
	b.outOfSync = false
}

func (b *Board) findLocked(taskID int64) (Task, domain.Status, bool) {
	for status, tasks := range b.columns {
		for _, task := range tasks {
			if task.ID == taskID {
				return task, status, true
			}
		}
	}
	return Task{}, "", false
}

func (b *Board) removeLocked(taskID int64, from domain.Status) {
	tasks := b.columns[from]
	for i, task := range tasks {
		if task.ID == taskID {
			b.columns[from] = append(tasks[:i:i], tasks[i+1:]...)
			return
		}
	}
}
