package model

// All returns a zero value of every persisted model, for migration
func All() []any {
	return []any{
		&User{}, &LinkedAccount{}, &Group{}, &AnyObject{}, &Membership{}, &Conf{},
		&UPlainAttr{}, &GPlainAttr{}, &APlainAttr{}, &MPlainAttr{}, &CPlainAttr{},
		&UDerAttr{}, &GDerAttr{}, &ADerAttr{}, &MDerAttr{},
		&Role{}, &Application{}, &Privilege{},
		&AuthModule{}, &Policy{}, &Realm{}, &ClientApp{},
		&SecurityQuestion{}, &ConnInstance{}, &ExternalResource{},
		&Implementation{}, &Batch{}, &AnyType{}, &SRARoute{},
		&Report{}, &ReportExec{},
	}
}
