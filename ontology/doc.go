// Package ontology is the query-building and edit-batching core of the
// GraphIO SDK.
//
// A Namespace lazily resolves remote object types into locally cached
// handles. Handles start fluent queries (Select/Where/Limit → Execute) and
// edit sessions (staged creates/updates committed as batches). All remote
// work goes through the Transport interface; the package is indifferent to
// whether the concrete transport is HTTP or a message queue.
//
//	Employee := ns.GetObjectType(ctx, "Employee")
//	rows, err := Employee.
//		Where(Employee.Field("age").Gt(30)).
//		Select("name", "age").
//		Limit(5).
//		Execute(ctx)
//
//	edits := ns.Edits()
//	obj := edits.ForType(Employee).Create(map[string]any{"name": "John", "age": 30})
//	obj.Set("team", "platform")
//	result, err := edits.Commit(ctx)
package ontology
