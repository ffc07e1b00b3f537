package entity

// Kind describes the physical properties shared by every entity of one type.
type Kind struct {
	// Name is the identifier of the kind, such as "minecraft:player".
	Name string
	// Width and Height are the dimensions of the bounding box.
	Width, Height float64
	// StepHeight is the highest ledge the entity can walk onto without jumping.
	StepHeight float64
	// FluidPushable is true if flowing fluids push the entity.
	FluidPushable bool
	// Heavy entities receive the raw averaged fluid flow instead of a normalised one.
	Heavy bool
	// HardCollider is true if other entities collide with this entity's bounding box like a block.
	HardCollider bool
	// Leashable is true if the entity can be tied to a leash.
	Leashable bool
}

var (
	Player = Kind{Name: "minecraft:player", Width: 0.6, Height: 1.8, StepHeight: 0.6, FluidPushable: true, Heavy: true}
	Zombie = Kind{Name: "minecraft:zombie", Width: 0.6, Height: 1.95, StepHeight: 0.6, FluidPushable: true}
	Item   = Kind{Name: "minecraft:item", Width: 0.25, Height: 0.25, FluidPushable: true}
	Horse  = Kind{Name: "minecraft:horse", Width: 1.3964844, Height: 1.6, StepHeight: 1.0, FluidPushable: true, Leashable: true}

	Boat     = Kind{Name: "minecraft:boat", Width: 1.375, Height: 0.5625, HardCollider: true, Leashable: true}
	Minecart = Kind{Name: "minecraft:minecart", Width: 0.98, Height: 0.7, HardCollider: true}
	Shulker  = Kind{Name: "minecraft:shulker", Width: 1, Height: 1, HardCollider: true}
)

var kinds = map[string]Kind{}

func init() {
	for _, k := range []Kind{Player, Zombie, Item, Horse, Boat, Minecart, Shulker} {
		RegisterKind(k)
	}
}

// RegisterKind registers a kind so that it can be looked up by name. Registering a kind with an existing name
// replaces it. RegisterKind is not safe for concurrent use and should be called during setup.
func RegisterKind(k Kind) {
	kinds[k.Name] = k
}

// KindByName looks up a registered kind.
func KindByName(name string) (Kind, bool) {
	k, ok := kinds[name]
	return k, ok
}
