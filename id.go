package formwizard

import "github.com/xraph/formwizard/id"

// TraversalID identifies one start-to-done wizard traversal.
type TraversalID = id.ID

// extraTraversalKey is where the traversal ID lives in extra data.
const extraTraversalKey = "wizard_traversal_id"
