// Package resource shapes models into API output. A transformer picks the
// fields one serialization group exposes:
//
//	func UserItem(u models.User) resource.Map {
//	    return resource.Map{"id": u.ID, "email": u.Email}
//	}
//
//	cx.Success(resource.Item(user, UserItem))
//	cx.Paginated(resource.Collection(users, UserListItem), pagination)
package resource

// Map is the output of a transformer.
type Map = map[string]any

// Transformer converts one model into a Map.
type Transformer[T any] func(T) Map

// Item transforms a single model. A nil pointer yields nil, which encodes
// as JSON null.
func Item[T any](v *T, fn Transformer[T]) Map {
	if v == nil {
		return nil
	}
	return fn(*v)
}

// Collection transforms every item. An empty input yields an empty, non-nil
// slice so it encodes as [].
func Collection[T any](items []T, fn Transformer[T]) []Map {
	out := make([]Map, 0, len(items))
	for _, it := range items {
		out = append(out, fn(it))
	}
	return out
}
