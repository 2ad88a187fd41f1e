package avro

// PurchaseEventSchema is the Avro schema for purchase analytics events.
// Money fields stay strings end to end: the normalizer emits decimal
// strings and downstream consumers must not reinterpret them.
const PurchaseEventSchema = `{
	"type": "record",
	"name": "PurchaseEvent",
	"namespace": "com.fineyst.analytics",
	"fields": [
		{"name": "order_id", "type": "string"},
		{"name": "order_number", "type": ["null", "string"], "default": null},
		{"name": "total", "type": ["null", "string"], "default": null},
		{"name": "fired_at", "type": ["null", "string"], "default": null},

		{"name": "items", "type": ["null", {
			"type": "array",
			"items": {
				"type": "record",
				"name": "PurchaseLine",
				"fields": [
					{"name": "id", "type": ["null", "string"], "default": null},
					{"name": "name", "type": ["null", "string"], "default": null},
					{"name": "price", "type": ["null", "string"], "default": null},
					{"name": "quantity", "type": ["null", "long"], "default": null}
				]
			}
		}], "default": null}
	]
}`
