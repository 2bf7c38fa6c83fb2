package models

import "strconv"

// User represents a directory record served by the users endpoint.
type User struct {
	ID       int     `json:"id" bson:"_id" gorm:"primaryKey;autoIncrement:false;type:integer"`
	Name     string  `json:"name" bson:"name"`
	Username string  `json:"username" bson:"username"`
	Email    string  `json:"email" bson:"email" gorm:"uniqueIndex"`
	Phone    string  `json:"phone" bson:"phone"`
	Website  string  `json:"website" bson:"website"`
	Address  Address `json:"address" bson:"address" gorm:"type:jsonb;serializer:json"`
	Company  Company `json:"company" bson:"company" gorm:"type:jsonb;serializer:json"`
}

type Address struct {
	Street  string `json:"street" bson:"street"`
	Suite   string `json:"suite" bson:"suite"`
	City    string `json:"city" bson:"city"`
	Zipcode string `json:"zipcode" bson:"zipcode"`
	Geo     Geo    `json:"geo" bson:"geo"`
}

type Geo struct {
	Lat string `json:"lat" bson:"lat"`
	Lng string `json:"lng" bson:"lng"`
}

type Company struct {
	Name        string `json:"name" bson:"name"`
	CatchPhrase string `json:"catchPhrase" bson:"catch_phrase"`
	BS          string `json:"bs" bson:"bs"`
}

// Field is a named, flat string value of a user record.
type Field struct {
	Key   string
	Value string
}

// Fields lists the primitive fields of u in record order. Nested address and
// company values are not part of the list.
func (u User) Fields() []Field {
	return []Field{
		{Key: "id", Value: strconv.Itoa(u.ID)},
		{Key: "name", Value: u.Name},
		{Key: "username", Value: u.Username},
		{Key: "email", Value: u.Email},
		{Key: "phone", Value: u.Phone},
		{Key: "website", Value: u.Website},
	}
}

// Keys returns every top-level key of the JSON record, nested ones included.
func (u User) Keys() []string {
	return []string{"id", "name", "username", "email", "address", "phone", "website", "company"}
}
