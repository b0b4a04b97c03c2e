package decima

// CreditsColumn is one cell of the credits table.
type CreditsColumn struct {
	Base
	Name        string
	CreditsName string // UTF-16 on disk
	Style       Ref
	Style2      Ref
	Unknown     Ref
}

func (c *CreditsColumn) String() string { return c.TypeName + ": " + c.Name }

func decodeCreditsColumn(d *decoder) (Resource, error) {
	c := &CreditsColumn{Base: d.header()}
	c.Name = d.name()
	c.CreditsName = d.utf16Chars(int(d.u32()))
	c.Style = d.ref()
	c.Style2 = d.ref()
	c.Unknown = d.nullRef("CreditsColumn.Unknown")
	return c, d.err
}

// CreditsRow is one row of the credits table.
type CreditsRow struct {
	Base
	Name    string
	Columns []Ref // CreditsColumn
	Style   Ref
	Unknown [2]int8
}

func (c *CreditsRow) String() string { return c.TypeName + ": " + c.Name }

func decodeCreditsRow(d *decoder) (Resource, error) {
	c := &CreditsRow{Base: d.header()}
	c.Name = d.name()
	c.Columns = d.refs()
	c.Style = d.ref()
	c.Unknown = [2]int8{d.i8(), d.i8()}
	return c, d.err
}

// DataSourceCredits is a DataSourceCreditsResource, the root of the credits.
type DataSourceCredits struct {
	Base
	Name string
	Rows []Ref // CreditsRow
}

func (c *DataSourceCredits) String() string { return c.TypeName + ": " + c.Name }

func decodeDataSourceCredits(d *decoder) (Resource, error) {
	c := &DataSourceCredits{Base: d.header()}
	c.Name = d.name()
	c.Rows = d.refs()
	return c, d.err
}
