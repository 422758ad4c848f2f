package validators

import "go.mongodb.org/mongo-driver/bson"

var SubscriberValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"email", "consent", "created_at"},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},

			"email": bson.M{
				"bsonType":  "string",
				"maxLength": 120,
			},

			"consent": bson.M{
				"bsonType": "bool",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
