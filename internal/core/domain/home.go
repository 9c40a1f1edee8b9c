package domain

// Home is the generic place record kept in the relational store.
type Home struct {
	ID    string `json:"id" gorm:"column:id;primaryKey"`
	Place string `json:"place" gorm:"column:place"`
	Name  string `json:"name" gorm:"column:name"`
}

// TableName pins the table created by the original schema.
func (Home) TableName() string { return "Home" }

func (h Home) Key() string { return h.ID }
