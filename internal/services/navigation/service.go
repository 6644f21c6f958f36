// Package navigation provides cursor and navigation state management
package navigation

import "github.com/riordanpawley/laneboard/internal/domain"

// Position represents a computed position in the board
type Position struct {
	Lane   int  // Index into the visible lanes
	Record int  // Index within the lane
	Valid  bool // Whether a record is under the cursor
}

// Cursor tracks the selected record by ID so it survives refreshes and
// filter changes
type Cursor struct {
	RecordID     string // Primary state: selected record ID
	FallbackLane int    // Lane to use when RecordID is not found
}

// FindPosition computes the position of the cursor's record in the given lanes
func (c *Cursor) FindPosition(lanes []domain.BoardLane) Position {
	if c.RecordID != "" {
		for laneIdx, lane := range lanes {
			for recIdx, rec := range lane.Records {
				if rec.ID == c.RecordID {
					return Position{Lane: laneIdx, Record: recIdx, Valid: true}
				}
			}
		}
	}

	// Not selected or gone (filtered out, moved by a refresh): use fallback lane
	lane := c.FallbackLane
	if lane >= len(lanes) || lane < 0 {
		lane = 0
	}
	valid := lane < len(lanes) && len(lanes[lane].Records) > 0
	return Position{Lane: lane, Record: 0, Valid: valid}
}

// MoveVertical moves up or down within a lane, returns the new record ID
func (c *Cursor) MoveVertical(lanes []domain.BoardLane, delta int) string {
	pos := c.FindPosition(lanes)
	if !pos.Valid {
		return c.RecordID
	}

	records := lanes[pos.Lane].Records
	idx := min(max(pos.Record+delta, 0), len(records)-1)
	c.RecordID = records[idx].ID
	c.FallbackLane = pos.Lane
	return c.RecordID
}

// MoveHorizontal moves to an adjacent lane, keeping the row where possible
func (c *Cursor) MoveHorizontal(lanes []domain.BoardLane, delta int) string {
	pos := c.FindPosition(lanes)
	return c.jumpToLane(lanes, pos.Lane+delta, pos.Record)
}

// JumpToLane moves to a specific lane, keeping the row where possible
func (c *Cursor) JumpToLane(lanes []domain.BoardLane, laneIdx int) string {
	pos := c.FindPosition(lanes)
	return c.jumpToLane(lanes, laneIdx, pos.Record)
}

func (c *Cursor) jumpToLane(lanes []domain.BoardLane, laneIdx, row int) string {
	if len(lanes) == 0 {
		return c.RecordID
	}
	laneIdx = min(max(laneIdx, 0), len(lanes)-1)
	c.FallbackLane = laneIdx

	records := lanes[laneIdx].Records
	if len(records) == 0 {
		c.RecordID = ""
		return c.RecordID
	}
	c.RecordID = records[min(row, len(records)-1)].ID
	return c.RecordID
}

// JumpToStart moves to the first record in the current lane
func (c *Cursor) JumpToStart(lanes []domain.BoardLane) string {
	return c.MoveVertical(lanes, -len(c.laneRecords(lanes)))
}

// JumpToEnd moves to the last record in the current lane
func (c *Cursor) JumpToEnd(lanes []domain.BoardLane) string {
	return c.MoveVertical(lanes, len(c.laneRecords(lanes)))
}

func (c *Cursor) laneRecords(lanes []domain.BoardLane) []domain.Record {
	pos := c.FindPosition(lanes)
	if pos.Lane >= len(lanes) {
		return nil
	}
	return lanes[pos.Lane].Records
}

// Service manages navigation state
type Service struct {
	cursor Cursor
}

// NewService creates a new navigation service
func NewService() *Service {
	return &Service{}
}

// GetCursor returns the current cursor (for read access)
func (s *Service) GetCursor() *Cursor {
	return &s.cursor
}

// GetPosition returns the computed position of the cursor in the given lanes
func (s *Service) GetPosition(lanes []domain.BoardLane) Position {
	return s.cursor.FindPosition(lanes)
}

// GetCurrentRecord returns the record under the cursor and its lane
func (s *Service) GetCurrentRecord(lanes []domain.BoardLane) (*domain.Record, *domain.BoardLane) {
	pos := s.cursor.FindPosition(lanes)
	if !pos.Valid {
		return nil, nil
	}
	lane := lanes[pos.Lane]
	rec := lane.Records[pos.Record]
	return &rec, &lane
}

// MoveDown moves cursor down in current lane
func (s *Service) MoveDown(lanes []domain.BoardLane) {
	s.cursor.MoveVertical(lanes, 1)
}

// MoveUp moves cursor up in current lane
func (s *Service) MoveUp(lanes []domain.BoardLane) {
	s.cursor.MoveVertical(lanes, -1)
}

// MoveLeft moves cursor to left lane
func (s *Service) MoveLeft(lanes []domain.BoardLane) {
	s.cursor.MoveHorizontal(lanes, -1)
}

// MoveRight moves cursor to right lane
func (s *Service) MoveRight(lanes []domain.BoardLane) {
	s.cursor.MoveHorizontal(lanes, 1)
}

// HalfPageDown moves cursor half a page down
func (s *Service) HalfPageDown(lanes []domain.BoardLane, halfPage int) {
	s.cursor.MoveVertical(lanes, halfPage)
}

// HalfPageUp moves cursor half a page up
func (s *Service) HalfPageUp(lanes []domain.BoardLane, halfPage int) {
	s.cursor.MoveVertical(lanes, -halfPage)
}

// GotoTop moves cursor to first record in lane
func (s *Service) GotoTop(lanes []domain.BoardLane) {
	s.cursor.JumpToStart(lanes)
}

// GotoBottom moves cursor to last record in lane
func (s *Service) GotoBottom(lanes []domain.BoardLane) {
	s.cursor.JumpToEnd(lanes)
}

// GotoFirstLane moves cursor to first lane
func (s *Service) GotoFirstLane(lanes []domain.BoardLane) {
	s.cursor.JumpToLane(lanes, 0)
}

// GotoLastLane moves cursor to last lane
func (s *Service) GotoLastLane(lanes []domain.BoardLane) {
	s.cursor.JumpToLane(lanes, len(lanes)-1)
}

// JumpToRecordByID finds and selects a record by ID
func (s *Service) JumpToRecordByID(lanes []domain.BoardLane, recordID string) bool {
	for laneIdx, lane := range lanes {
		for _, rec := range lane.Records {
			if rec.ID == recordID {
				s.cursor = Cursor{RecordID: rec.ID, FallbackLane: laneIdx}
				return true
			}
		}
	}
	return false
}

// Reset clears the cursor, for example when the view changes
func (s *Service) Reset() {
	s.cursor = Cursor{}
}
