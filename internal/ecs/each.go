package ecs

// Each1 calls fn for every live entity carrying an A, in increasing ID order.
// fn may modify components through the pointers but must not add or remove
// entities or components.
func Each1[A any](w *World, fn func(e Entity, a *A)) {
	ia := ID[A]()
	for e := range w.Query(ia) {
		fn(e, &columnOf[A](w, ia).data[e])
	}
}

// Each2 is Each1 for entities carrying both an A and a B.
func Each2[A, B any](w *World, fn func(e Entity, a *A, b *B)) {
	ia, ib := ID[A](), ID[B]()
	for e := range w.Query(ia, ib) {
		fn(e, &columnOf[A](w, ia).data[e], &columnOf[B](w, ib).data[e])
	}
}

// Each3 is Each1 for entities carrying an A, a B and a C.
func Each3[A, B, C any](w *World, fn func(e Entity, a *A, b *B, c *C)) {
	ia, ib, ic := ID[A](), ID[B](), ID[C]()
	for e := range w.Query(ia, ib, ic) {
		fn(e,
			&columnOf[A](w, ia).data[e],
			&columnOf[B](w, ib).data[e],
			&columnOf[C](w, ic).data[e])
	}
}
