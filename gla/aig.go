package gla

// AIG is the read-only view the GLA core consumes (spec.md §6.1,
// component A). It is a narrow contract in the same spirit as
// emu/bus.go's SMSBus: the core never reaches into an AIG's internal
// representation, only through these methods.
//
// Implementations own node allocation, fanout indexing, and
// traversal-id epochs; the core only reads and temporarily marks.
type AIG interface {
	// ObjectCount returns one past the highest valid ObjID.
	ObjectCount() int

	IsConst0(id ObjID) bool
	IsPI(id ObjID) bool
	IsAnd(id ObjID) bool
	IsCI(id ObjID) bool // PI or RO
	IsCO(id ObjID) bool // PO or RI
	IsRO(id ObjID) bool
	IsRI(id ObjID) bool
	IsPO(id ObjID) bool

	// FaninID0/FaninComplement0 give the (sole, for RI/PO) or first
	// (for And) fanin and its polarity.
	FaninID0(id ObjID) ObjID
	FaninComplement0(id ObjID) bool

	// FaninID1/FaninComplement1 are valid only for And objects.
	FaninID1(id ObjID) ObjID
	FaninComplement1(id ObjID) bool

	// RoToRi/RiToRo realize the register bijection.
	RoToRi(ro ObjID) ObjID
	RiToRo(ri ObjID) ObjID

	// POFanin0 returns the property output's driving literal.
	POFanin0(po ObjID) (ObjID, bool)

	// Traversal-id epoch marking, per spec.md §9's
	// "(Vec<u32>, u32) epoch counter" design note.
	IncrementTravID()
	SetTravIDCurrent(id ObjID)
	IsTravIDCurrent(id ObjID) bool

	// HasFanout reports whether a static fanout index is available;
	// FanoutIDs is only called by the refinement engine's optional
	// fanout-propagation path (spec.md §4.K.3) when it does.
	HasFanout() bool
	FanoutIDs(id ObjID) []ObjID
}
