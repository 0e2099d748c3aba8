package broken

//derive:Debug
type Broken struct {
	a int `derive:"skip(Display)"`
}

func (b Broken) A() int {
	return b.a
}
