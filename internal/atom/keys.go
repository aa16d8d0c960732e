package atom

import "fmt"

// Keys of the application values the controller reads and writes.
const (
	KeyPlaying         = "transport.playing"
	KeyMetronome       = "transport.metronome"
	KeyArrangerLoop    = "transport.arranger_loop"
	KeyArrangerRecord  = "transport.arranger_record"
	KeyTransportBeats  = "transport.position" // in beats
	KeyTrackColor      = "track.color"
	KeyTrackArmed      = "track.armed"
	KeyTrackHasPrev    = "track.has_previous"
	KeyTrackHasNext    = "track.has_next"
	KeyDeviceHasPrev   = "device.has_previous"
	KeyDeviceHasNext   = "device.has_next"
	KeyDrumBankExists  = "drum.exists"
	KeyClipColor       = "clip.color"
	KeyClipLoopStart   = "clip.loop_start"  // in beats
	KeyClipLoopLength  = "clip.loop_length" // in beats
	KeyClipPlayingStep = "clip.playing_step"
	KeyClipCanKeysUp   = "clip.can_scroll_keys_up"
	KeyClipCanKeysDown = "clip.can_scroll_keys_down"
	KeyClipCanStepsBwd = "clip.can_scroll_steps_backwards"
	KeyClipCanStepsFwd = "clip.can_scroll_steps_forwards"
	KeyArpEnabled      = "arp.enabled"
	KeyArpPeriod       = "arp.period" // in beats
	KeyCursorSlot      = "cursor_slot"
)

// Names of the application actions the controller invokes. Arguments:
// play_note (key, velocity), scroll_to_key (key), scroll_to_step (step),
// toggle_step (x, y, velocity), slot select and launch (slot index),
// remote_controls.adjust (parameter index, delta).
const (
	ActionTogglePlay     = "transport.toggle_play"
	ActionStop           = "transport.stop"
	ActionUndo           = "application.undo"
	ActionSave           = "application.save"
	ActionTrackPrevious  = "track.select_previous"
	ActionTrackNext      = "track.select_next"
	ActionDevicePrevious = "device.select_previous"
	ActionDeviceNext     = "device.select_next"
	ActionPlayNote       = "track.play_note"
	ActionScrollToKey    = "clip.scroll_to_key"
	ActionScrollToStep   = "clip.scroll_to_step"
	ActionToggleStep     = "clip.toggle_step"
	ActionLaunchCursor   = "cursor_slot.launch"
	ActionSlotSelect     = "slot.select"
	ActionSlotLaunch     = "slot.launch"
	ActionRemoteAdjust   = "remote_controls.adjust"
	ActionArpConfigure   = "arp.configure_for_pads"
)

// DrumPadExistsKey is set when drum pad i of the bank is populated.
func DrumPadExistsKey(i int) string { return fmt.Sprintf("drum.%d.exists", i) }

// DrumPadColorKey is the color of drum pad i.
func DrumPadColorKey(i int) string { return fmt.Sprintf("drum.%d.color", i) }

// NoteVelocityKey is the velocity of key while it plays, 0 otherwise.
func NoteVelocityKey(key int) string { return fmt.Sprintf("note.%d.velocity", key) }

// StepKey holds the state of step x of the cursor clip's first key:
// 0 empty, 1 sustained, 2 note start.
func StepKey(x int) string { return fmt.Sprintf("clip.step.%d", x) }

// SlotKey is the prefix of launcher slot i's values.
func SlotKey(i int) string { return fmt.Sprintf("slot.%d", i) }

// Launcher slot fields, appended to SlotKey or KeyCursorSlot.
const (
	slotHasContent      = ".has_content"
	slotColor           = ".color"
	slotPlaying         = ".playing"
	slotRecording       = ".recording"
	slotPlaybackQueued  = ".playback_queued"
	slotRecordingQueued = ".recording_queued"
)
