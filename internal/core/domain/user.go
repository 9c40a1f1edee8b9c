package domain

// User is a persisted account record. Password holds whatever was stored at
// write time; records created through UserService always hold a bcrypt hash.
type User struct {
	ID       int    `json:"UserId" bson:"_id"`
	Username string `json:"UserName" bson:"username"`
	Password string `json:"-" bson:"password"`
}

// Key satisfies the generic repository's keyed-entity contract.
func (u User) Key() int { return u.ID }
