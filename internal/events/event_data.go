package events

// EventData is the interface that all event data types must implement
// This allows for type-safe event data while maintaining flexibility
type EventData interface {
	// EventType returns the event type this data is associated with
	EventType() EventType
}

// HistoryAppendedData contains data for HistoryAppended events
type HistoryAppendedData struct {
	Timestamp int64 `json:"timestamp"`
	Bots      int   `json:"bots"`
	Entries   int   `json:"entries"`
}

// EventType returns the event type for HistoryAppendedData
func (d *HistoryAppendedData) EventType() EventType {
	return HistoryAppended
}

// ViewportChangedData contains data for ViewportChanged events
type ViewportChangedData struct {
	Height    float64 `json:"height"`
	Width     float64 `json:"width"`
	AutoWidth bool    `json:"auto_width"`
	Committed bool    `json:"committed"` // false while a drag is still in flight
}

// EventType returns the event type for ViewportChangedData
func (d *ViewportChangedData) EventType() EventType {
	return ViewportChanged
}

// VariantChangedData contains data for VariantChanged events
type VariantChangedData struct {
	Variant string `json:"variant"`
}

// EventType returns the event type for VariantChangedData
func (d *VariantChangedData) EventType() EventType {
	return VariantChanged
}

// BotRegisteredData contains data for BotRegistered events
type BotRegisteredData struct {
	BotID string `json:"bot_id"`
	Label string `json:"label"`
}

// EventType returns the event type for BotRegisteredData
func (d *BotRegisteredData) EventType() EventType {
	return BotRegistered
}
