package event

// EventType represents the type of game event
type EventType int

const (
	// EventPlaceBuilding requests a building at the previewed slot
	// Trigger: left release with a valid preview | Consumer: BuildSystem | Payload: *PlaceBuildingPayload
	EventPlaceBuilding EventType = iota

	// EventJointClick feeds a click into the joint state machine
	// Trigger: left release with the joint tool | Consumer: JointSystem | Payload: *JointClickPayload
	EventJointClick

	// EventQuakeTrigger starts a quake immediately
	// Trigger: X key | Consumer: EarthquakeSystem | Payload: nil
	EventQuakeTrigger

	// EventSnapshotRequest asks for the tower to be saved
	// Trigger: S key | Consumer: SnapshotSystem | Payload: nil
	EventSnapshotRequest

	// EventBuildingPlaced reports a committed building
	// Consumer: AudioSystem, StatsSystem | Payload: *BuildingPlacedPayload
	EventBuildingPlaced

	// EventJointCreated reports a committed joint
	// Consumer: AudioSystem, StatsSystem | Payload: *JointCreatedPayload
	EventJointCreated

	// EventJointBroken reports a joint torn apart by the solver
	// Consumer: AudioSystem, StatsSystem | Payload: *JointBrokenPayload
	EventJointBroken

	// EventQuakeStarted marks the start of an active quake window
	// Consumer: AudioSystem, StatsSystem | Payload: *QuakePayload
	EventQuakeStarted

	// EventQuakeStopped marks the end of an active quake window
	// Consumer: AudioSystem | Payload: *QuakePayload
	EventQuakeStopped

	// EventRentCollected reports rent paid by an inhabitant
	// Consumer: StatsSystem | Payload: *RentPayload
	EventRentCollected

	// EventInhabitantEvicted reports an inhabitant leaving a tilted building
	// Consumer: StatsSystem | Payload: *InhabitantPayload
	EventInhabitantEvicted
)

var typeNames = [...]string{
	EventPlaceBuilding:     "place_building",
	EventJointClick:        "joint_click",
	EventQuakeTrigger:      "quake_trigger",
	EventSnapshotRequest:   "snapshot_request",
	EventBuildingPlaced:    "building_placed",
	EventJointCreated:      "joint_created",
	EventJointBroken:       "joint_broken",
	EventQuakeStarted:      "quake_started",
	EventQuakeStopped:      "quake_stopped",
	EventRentCollected:     "rent_collected",
	EventInhabitantEvicted: "inhabitant_evicted",
}

func (t EventType) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

// GameEvent represents a single game event with metadata
type GameEvent struct {
	Type    EventType
	Payload any
	Tick    uint64
}
