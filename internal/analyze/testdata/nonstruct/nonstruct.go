package nonstruct

//derive:Clone
type ID int
