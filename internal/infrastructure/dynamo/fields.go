package dynamo

// DynamoDB attribute names used in keys and expressions.
// Using constants prevents silent runtime bugs caused by key typos.
const (
	fieldMessageID = "message_id"
	fieldRead      = "read" // reserved word; always go through ExpressionAttributeNames
)
