package decima

// LootData is one weighted entry of a loot slot.
type LootData struct {
	Base
	Name        string
	Probability float32
	Unknown     Ref
	Items       []Ref // LootItem
	Quantity    uint32
	Unknown3    int8
}

func (l *LootData) String() string { return l.TypeName + ": " + l.Name }

func decodeLootData(d *decoder) (Resource, error) {
	l := &LootData{Base: d.header()}
	l.Name = d.name()
	l.Probability = d.f32()
	l.Unknown = d.ref()
	l.Items = d.refs()
	l.Quantity = d.u32()
	l.Unknown3 = d.i8()
	return l, d.err
}

// LootItem names the inventory entity a loot entry grants. Only the leading
// fields are decoded; Rest keeps the remainder of the payload.
type LootItem struct {
	Base
	Name            string
	Unknown         float32
	Unknown2        Ref
	InventoryEntity Ref // InventoryEntityResource
	Rest            []byte
}

func (l *LootItem) String() string { return l.TypeName + ": " + l.Name }

func decodeLootItem(d *decoder) (Resource, error) {
	l := &LootItem{Base: d.header()}
	l.Name = d.name()
	l.Unknown = d.f32()
	l.Unknown2 = d.ref()
	l.InventoryEntity = d.ref()
	l.Rest = d.rest()
	return l, d.err
}

// LootSlot picks among LootData entries.
type LootSlot struct {
	Base
	Name     string
	Data     []Ref // LootData
	Settings Ref
}

func (l *LootSlot) String() string { return l.TypeName + ": " + l.Name }

func decodeLootSlot(d *decoder) (Resource, error) {
	l := &LootSlot{Base: d.header()}
	l.Name = d.name()
	l.Data = d.refs()
	l.Settings = d.ref()
	return l, d.err
}

// InventoryLootPackage is an InventoryLootPackageComponentResource, the
// root of a loot box.
type InventoryLootPackage struct {
	Base
	Name          string
	Unknown       Ref
	Slots         []Ref // LootSlot
	ItemComponent Ref   // InventoryItemComponentResource
}

func (l *InventoryLootPackage) String() string { return l.TypeName + ": " + l.Name }

func decodeInventoryLootPackage(d *decoder) (Resource, error) {
	l := &InventoryLootPackage{Base: d.header()}
	l.Name = d.name()
	l.Unknown = d.nullRef("InventoryLootPackageComponentResource.Unknown")
	l.Slots = d.refs()
	l.ItemComponent = d.ref()
	return l, d.err
}

// InventoryItemComponent is an InventoryItemComponentResource: the display
// name, description and icons of an item.
type InventoryItemComponent struct {
	Base
	Name          string
	ItemName      Ref // LocalizedTextResource
	Description   Ref // LocalizedTextResource
	PriceInfo     Ref
	Unknown       uint32
	Icon          Ref
	Icon2         Ref
	BrokenRef     Ref
	UnknownRefs   [3]Ref
	RefList       []Ref
	UnknownShort  uint16
	RefList2      []Ref
	UnknownBytes  []byte
	Soundbank     Ref
	UnknownRef4   Ref
	UnknownBytes2 []byte
}

func (c *InventoryItemComponent) String() string { return c.TypeName + ": " + c.Name }

func decodeInventoryItemComponent(d *decoder) (Resource, error) {
	c := &InventoryItemComponent{Base: d.header()}
	c.Name = d.name()
	c.ItemName = d.ref()
	c.Description = d.ref()
	c.PriceInfo = d.ref()
	c.Unknown = d.u32()
	c.Icon = d.ref()
	c.Icon2 = d.ref()
	c.BrokenRef = d.ref()
	for i := range c.UnknownRefs {
		c.UnknownRefs[i] = d.ref()
	}
	c.RefList = d.refs()
	c.UnknownShort = d.u16()
	c.RefList2 = d.refs()
	c.UnknownBytes = d.bytes(5)
	c.Soundbank = d.ref()
	c.UnknownRef4 = d.ref()
	c.UnknownBytes2 = d.bytes(2)
	return c, d.err
}
