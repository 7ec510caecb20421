package gorm

import (
	"context"
	"errors"
	"time"

	"github.com/doodlesbykumbi/idrepo/pkg/cascade"
	"github.com/doodlesbykumbi/idrepo/pkg/model"
	"github.com/doodlesbykumbi/idrepo/pkg/store"
)

func (s *StoreSuite) privilegeKeys(ps []model.Privilege) []string {
	keys := make([]string, 0, len(ps))
	for _, p := range ps {
		keys = append(keys, p.ID)
	}
	return keys
}

func (s *StoreSuite) seedApplication() {
	p := model.Privilege{ID: "P", ApplicationID: ptr("A")}
	q := model.Privilege{ID: "Q"}
	s.create(
		&model.Application{ID: "A"},
		&p, &q,
		&model.User{ID: "u1", Username: "rossini"},
		&model.Role{ID: "R1", Privileges: []model.Privilege{p, q}},
		&model.LinkedAccount{ID: "Acc1", OwnerID: "u1", ResourceID: "ldap", Privileges: []model.Privilege{p}},
	)
}

func (s *StoreSuite) TestDeleteApplication() {
	s.seedApplication()

	s.Require().NoError(s.repos.Applications.DeleteByKey(s.ctx, "A"))

	s.Equal(int64(0), s.count(&model.Application{}, ""))
	s.Equal(int64(0), s.count(&model.Privilege{}, "id = ?", "P"))
	s.Equal(int64(1), s.count(&model.Privilege{}, "id = ?", "Q"))

	role, err := s.repos.Roles.Find(s.ctx, "R1")
	s.Require().NoError(err)
	s.Equal([]string{"Q"}, s.privilegeKeys(role.Privileges))

	account, err := s.repos.LinkedAccounts.Find(s.ctx, "Acc1")
	s.Require().NoError(err)
	s.Empty(account.Privileges)
	s.False(account.HasPrivilege("P"))
}

func (s *StoreSuite) TestDeleteApplicationEntryPointsAgree() {
	s.seedApplication()
	app, err := s.repos.Applications.Find(s.ctx, "A")
	s.Require().NoError(err)

	s.Require().NoError(s.repos.Applications.Delete(s.ctx, app))

	s.Equal(int64(0), s.count(&model.Privilege{}, "id = ?", "P"))
	s.Equal(int64(1), s.count(&model.Privilege{}, ""))
	var links int64
	s.Require().NoError(s.db.Table("linked_account_privileges").Count(&links).Error)
	s.Zero(links)
}

func (s *StoreSuite) TestDeletePrivilegeUnlinks() {
	s.seedApplication()

	s.Require().NoError(s.repos.Privileges.DeleteByKey(s.ctx, "Q"))

	role, err := s.repos.Roles.Find(s.ctx, "R1")
	s.Require().NoError(err)
	s.Equal([]string{"P"}, s.privilegeKeys(role.Privileges))
	s.True(role.HasPrivilege("P"))
}

func (s *StoreSuite) TestDeleteAuthModule() {
	policy1 := &model.Policy{ID: "policy1", Kind: model.PolicyAuth}
	s.Require().NoError(policy1.SetConf(model.AuthPolicyConf{Type: model.DefaultConfType, AuthModules: []string{"m1", "m2"}}))
	scripted := &model.Policy{ID: "scripted", Kind: model.PolicyAuth, Conf: `{"type":"groovy","authModules":["m1"]}`}
	access := &model.Policy{ID: "access", Kind: model.PolicyAccess, Conf: `{"type":"default","authModules":["m1"]}`}
	s.create(&model.AuthModule{ID: "m1"}, &model.AuthModule{ID: "m2"}, policy1, scripted, access)

	s.Require().NoError(s.repos.AuthModules.DeleteByKey(s.ctx, "m1"))

	got, err := s.repos.Policies.Find(s.ctx, "policy1")
	s.Require().NoError(err)
	modules, err := got.AuthModules()
	s.Require().NoError(err)
	s.Equal([]string{"m2"}, modules)

	untouched, err := s.repos.Policies.Find(s.ctx, "scripted")
	s.Require().NoError(err)
	s.Equal(scripted.Conf, untouched.Conf)
	other, err := s.repos.Policies.Find(s.ctx, "access")
	s.Require().NoError(err)
	s.Equal(access.Conf, other.Conf)

	s.Equal(int64(0), s.count(&model.AuthModule{}, "id = ?", "m1"))
	s.Equal(int64(1), s.count(&model.AuthModule{}, ""))
}

func (s *StoreSuite) TestDeleteSecurityQuestion() {
	s.create(
		&model.SecurityQuestion{ID: "q1", Content: "What's your favorite color?"},
		&model.User{ID: "u1", Username: "rossini", SecurityQuestionID: ptr("q1"), SecurityAnswer: ptr("blue")},
		&model.User{ID: "u2", Username: "verdi", SecurityQuestionID: ptr("q2"), SecurityAnswer: ptr("green")},
	)

	s.Require().NoError(s.repos.SecurityQuestions.DeleteByKey(s.ctx, "q1"))

	u1, err := s.repos.Users.Find(s.ctx, "u1")
	s.Require().NoError(err)
	s.Nil(u1.SecurityQuestionID)
	s.Nil(u1.SecurityAnswer)

	u2, err := s.repos.Users.Find(s.ctx, "u2")
	s.Require().NoError(err)
	s.Equal("green", *u2.SecurityAnswer)

	s.Equal(int64(0), s.count(&model.SecurityQuestion{}, ""))
}

func (s *StoreSuite) TestDeleteConnector() {
	s.create(
		&model.ConnInstance{ID: "conn1", DisplayName: "LDAP"},
		&model.User{ID: "u1", Username: "rossini"},
		&model.LinkedAccount{ID: "acc1", OwnerID: "u1", ResourceID: "ldap"},
	)
	for _, res := range []*model.ExternalResource{
		{ID: "ldap", ConnectorID: "conn1"},
		{ID: "ldap2", ConnectorID: "conn1"},
		{ID: "db", ConnectorID: "conn2"},
	} {
		_, err := s.repos.Resources.Save(s.ctx, res)
		s.Require().NoError(err)
	}
	s.Equal(3, s.registry.Len())

	s.Require().NoError(s.repos.Connectors.DeleteByKey(s.ctx, "conn1"))

	s.Equal(int64(0), s.count(&model.ConnInstance{}, ""))
	s.Equal(int64(1), s.count(&model.ExternalResource{}, ""))
	s.Equal(int64(0), s.count(&model.LinkedAccount{}, ""))
	s.Equal(1, s.registry.Len())
	_, ok := s.registry.Lookup("ldap")
	s.False(ok)
	_, ok = s.registry.Lookup("db")
	s.True(ok)
}

func (s *StoreSuite) TestDeleteResourceMissingFromRegistry() {
	s.create(&model.ExternalResource{ID: "ldap", ConnectorID: "conn1"})
	s.Zero(s.registry.Len())

	s.Require().NoError(s.repos.Resources.DeleteByKey(s.ctx, "ldap"))
	s.Equal(int64(0), s.count(&model.ExternalResource{}, ""))
}

func (s *StoreSuite) TestRolledBackCascadeKeepsRegistry() {
	_, err := s.repos.Resources.Save(s.ctx, &model.ExternalResource{ID: "ldap", ConnectorID: "conn1"})
	s.Require().NoError(err)
	s.create(&model.ConnInstance{ID: "conn1"})

	abort := errors.New("abort")
	err = s.repos.Transaction(s.ctx, func(tx *Repositories) error {
		if err := tx.Connectors.DeleteByKey(s.ctx, "conn1"); err != nil {
			return err
		}
		return abort
	})
	s.ErrorIs(err, abort)

	s.Equal(int64(1), s.count(&model.ConnInstance{}, ""))
	s.Equal(int64(1), s.count(&model.ExternalResource{}, ""))
	s.Equal(1, s.registry.Len())
}

func (s *StoreSuite) TestImplementationCachePurged() {
	impl := &model.Implementation{ID: "rule", Engine: model.EngineGroovy, Type: "PULL_CORRELATION_RULE", Body: "return 1"}
	_, err := s.repos.Implementations.Save(s.ctx, impl)
	s.Require().NoError(err)
	first, err := s.repos.Implementations.Load(s.ctx, "rule")
	s.Require().NoError(err)
	s.Equal("return 1", first.Body)
	s.Equal(1, s.cache.Len())

	s.Require().NoError(s.db.Model(&model.Implementation{}).Where("id = ?", "rule").Update("body", "return 9").Error)
	cached, err := s.repos.Implementations.Load(s.ctx, "rule")
	s.Require().NoError(err)
	s.Same(first, cached, "served from the cache without reading the row")

	impl.Body = "return 2"
	_, err = s.repos.Implementations.Save(s.ctx, impl)
	s.Require().NoError(err)
	s.Zero(s.cache.Len())

	loaded, err := s.repos.Implementations.Load(s.ctx, "rule")
	s.Require().NoError(err)
	s.Equal("return 2", loaded.Body)
	s.Equal(1, s.cache.Len())

	s.Require().NoError(s.repos.Implementations.DeleteByKey(s.ctx, "rule"))
	s.Zero(s.cache.Len())
	s.Equal(int64(0), s.count(&model.Implementation{}, ""))

	_, err = s.repos.Implementations.Load(s.ctx, "rule")
	s.ErrorIs(err, store.ErrNotFound)

	byType, err := s.repos.Implementations.FindByType(s.ctx, "PULL_CORRELATION_RULE")
	s.Require().NoError(err)
	s.Empty(byType)
}

func (s *StoreSuite) TestDeletePolicyClearsReferences() {
	s.create(
		&model.Policy{ID: "acct", Kind: model.PolicyAccount},
		&model.Realm{ID: "root", Name: "/", FullPath: "/", AccountPolicyID: ptr("acct"), AuthPolicyID: ptr("acct")},
		&model.Realm{ID: "even", Name: "even", FullPath: "/even", ParentID: ptr("root")},
		&model.Realm{ID: "two", Name: "two", FullPath: "/even/two", ParentID: ptr("even"), AccountPolicyID: ptr("other")},
		&model.ExternalResource{ID: "ldap", ConnectorID: "conn1", AccountPolicyID: ptr("acct"), PasswordPolicyID: ptr("acct")},
		&model.ClientApp{ID: "oidc", Kind: model.ClientAppOIDCRP, Name: "oidc", AuthPolicyID: ptr("acct")},
	)

	acct := &model.Policy{ID: "acct", Kind: model.PolicyAccount}
	realms, err := s.repos.Realms.FindByPolicy(s.ctx, acct)
	s.Require().NoError(err)
	keys := make([]string, 0, len(realms))
	for _, r := range realms {
		keys = append(keys, r.ID)
	}
	s.ElementsMatch([]string{"root", "even"}, keys)

	s.Require().NoError(s.repos.Policies.DeleteByKey(s.ctx, "acct"))

	root, err := s.repos.Realms.Find(s.ctx, "root")
	s.Require().NoError(err)
	s.Nil(root.AccountPolicyID)
	s.Equal("acct", *root.AuthPolicyID, "only the field of the policy kind is cleared")

	two, err := s.repos.Realms.Find(s.ctx, "two")
	s.Require().NoError(err)
	s.Equal("other", *two.AccountPolicyID)

	res, err := s.repos.Resources.Find(s.ctx, "ldap")
	s.Require().NoError(err)
	s.Nil(res.AccountPolicyID)
	s.Equal("acct", *res.PasswordPolicyID)

	app, err := s.repos.ClientApps.Find(s.ctx, "oidc")
	s.Require().NoError(err)
	s.Equal("acct", *app.AuthPolicyID)

	s.Equal(int64(0), s.count(&model.Policy{}, ""))
}

func (s *StoreSuite) TestPolicyFilterUnknownKindMatchesNothing() {
	s.create(&model.ClientApp{ID: "cas", Kind: model.ClientAppCASSP, Name: "cas", AuthPolicyID: ptr("p")})

	for _, k := range []model.PolicyKind{model.PolicyPush, "BOGUS"} {
		apps, err := s.repos.ClientApps.FindByPolicy(s.ctx, &model.Policy{ID: "p", Kind: k})
		s.Require().NoError(err)
		s.Empty(apps)
	}

	apps, err := s.repos.ClientApps.FindByPolicy(s.ctx, &model.Policy{ID: "p", Kind: model.PolicyAuth})
	s.Require().NoError(err)
	s.Len(apps, 1)
}

func (s *StoreSuite) TestDeleteReport() {
	s.create(
		&model.Report{ID: "r1", Name: "users"},
		&model.ReportExec{ReportID: "r1", Status: "SUCCESS", Start: s.now},
		&model.ReportExec{ReportID: "r1", Status: "FAILURE", Start: s.now.Add(time.Hour)},
		&model.ReportExec{ReportID: "r2", Status: "SUCCESS", Start: s.now},
	)
	execs, err := s.repos.Reports.FindExecutions(s.ctx, "r1")
	s.Require().NoError(err)
	s.Len(execs, 2)

	s.Require().NoError(s.repos.Reports.DeleteByKey(s.ctx, "r1"))

	s.Equal(int64(0), s.count(&model.Report{}, ""))
	s.Equal(int64(1), s.count(&model.ReportExec{}, ""))
}

func (s *StoreSuite) TestDeleteBuiltinAnyTypeForbidden() {
	s.create(
		&model.AnyType{ID: "USER", Kind: model.AnyTypeKindUser},
		&model.AnyType{ID: "GROUP", Kind: model.AnyTypeKindGroup},
		&model.AnyType{ID: "PRINTER", Kind: model.AnyTypeKindAnyObject},
	)

	s.ErrorIs(s.repos.AnyTypes.DeleteByKey(s.ctx, "USER"), store.ErrBuiltinAnyType)
	group, err := s.repos.AnyTypes.FindBuiltin(s.ctx, model.AnyTypeKindGroup)
	s.Require().NoError(err)
	s.ErrorIs(s.repos.AnyTypes.Delete(s.ctx, group), store.ErrBuiltinAnyType)

	s.Require().NoError(s.repos.AnyTypes.DeleteByKey(s.ctx, "PRINTER"))
	s.Equal(int64(2), s.count(&model.AnyType{}, ""))
}

func (s *StoreSuite) TestDeleteUserRemovesOwnedRecords() {
	s.seedApplication()
	s.create(
		&model.UPlainAttr{PlainAttrBase: model.PlainAttrBase{OwnerID: "u1", SchemaKey: "email"}},
		&model.UDerAttr{DerAttrBase: model.DerAttrBase{OwnerID: "u1", SchemaKey: "cn"}},
		&model.Membership{ID: "m1", UserID: "u1", GroupID: "g1"},
		&model.Membership{ID: "m2", UserID: "u2", GroupID: "g1"},
		&model.MPlainAttr{PlainAttrBase: model.PlainAttrBase{OwnerID: "m1", SchemaKey: "since"}},
		&model.MDerAttr{DerAttrBase: model.DerAttrBase{OwnerID: "m1", SchemaKey: "label"}},
		&model.MPlainAttr{PlainAttrBase: model.PlainAttrBase{OwnerID: "m2", SchemaKey: "since"}},
	)

	s.Require().NoError(s.repos.Users.DeleteByKey(s.ctx, "u1"))

	s.Equal(int64(0), s.count(&model.User{}, ""))
	s.Equal(int64(0), s.count(&model.LinkedAccount{}, ""))
	s.Equal(int64(0), s.count(&model.UPlainAttr{}, ""))
	s.Equal(int64(0), s.count(&model.UDerAttr{}, ""))
	s.Equal(int64(2), s.count(&model.Privilege{}, ""))

	s.Equal(int64(0), s.count(&model.Membership{}, "user_id = ?", "u1"))
	s.Equal(int64(0), s.count(&model.MPlainAttr{}, "owner_id = ?", "m1"))
	s.Equal(int64(0), s.count(&model.MDerAttr{}, ""))
	s.Equal(int64(1), s.count(&model.Membership{}, "user_id = ?", "u2"), "other users keep their memberships")
	s.Equal(int64(1), s.count(&model.MPlainAttr{}, "owner_id = ?", "m2"))
}

func (s *StoreSuite) TestDeleteRealmRemovesDescendants() {
	s.create(
		&model.Realm{ID: "root", Name: "/", FullPath: "/"},
		&model.Realm{ID: "even", Name: "even", FullPath: "/even", ParentID: ptr("root")},
		&model.Realm{ID: "two", Name: "two", FullPath: "/even/two", ParentID: ptr("even")},
		&model.Realm{ID: "deep", Name: "deep", FullPath: "/even/two/deep", ParentID: ptr("two")},
		&model.Realm{ID: "evening", Name: "evening", FullPath: "/evening", ParentID: ptr("root")},
		&model.Realm{ID: "odd", Name: "odd", FullPath: "/odd", ParentID: ptr("root")},
	)

	even, err := s.repos.Realms.Find(s.ctx, "even")
	s.Require().NoError(err)
	below, err := s.repos.Realms.FindDescendants(s.ctx, even)
	s.Require().NoError(err)
	keys := make([]string, 0, len(below))
	for _, r := range below {
		keys = append(keys, r.ID)
	}
	s.Equal([]string{"deep", "two"}, keys, "deepest first, sibling with a shared name prefix excluded")

	s.Require().NoError(s.repos.Realms.DeleteByKey(s.ctx, "even"))

	s.Equal(int64(0), s.count(&model.Realm{}, "id IN ?", []string{"even", "two", "deep"}))
	s.Equal(int64(0), s.count(&model.Realm{}, "parent_id IN ?", []string{"even", "two"}))
	s.Equal(int64(3), s.count(&model.Realm{}, ""))
}

func (s *StoreSuite) TestDeleteRootRealmForbidden() {
	s.create(
		&model.Realm{ID: "root", Name: "/", FullPath: "/"},
		&model.Realm{ID: "even", Name: "even", FullPath: "/even", ParentID: ptr("root")},
	)

	s.ErrorIs(s.repos.Realms.DeleteByKey(s.ctx, "root"), store.ErrRootRealm)
	root, err := s.repos.Realms.Find(s.ctx, "root")
	s.Require().NoError(err)
	s.ErrorIs(s.repos.Realms.Delete(s.ctx, root), store.ErrRootRealm)

	s.Equal(int64(2), s.count(&model.Realm{}, ""))
}

func (s *StoreSuite) TestDeleteMissingKeyIsNoop() {
	deletes := map[string]func(context.Context, string) error{
		"applications":       s.repos.Applications.DeleteByKey,
		"privileges":         s.repos.Privileges.DeleteByKey,
		"auth modules":       s.repos.AuthModules.DeleteByKey,
		"policies":           s.repos.Policies.DeleteByKey,
		"realms":             s.repos.Realms.DeleteByKey,
		"client apps":        s.repos.ClientApps.DeleteByKey,
		"security questions": s.repos.SecurityQuestions.DeleteByKey,
		"connectors":         s.repos.Connectors.DeleteByKey,
		"resources":          s.repos.Resources.DeleteByKey,
		"implementations":    s.repos.Implementations.DeleteByKey,
		"batches":            s.repos.Batches.DeleteByKey,
		"any types":          s.repos.AnyTypes.DeleteByKey,
		"routes":             s.repos.Routes.DeleteByKey,
		"reports":            s.repos.Reports.DeleteByKey,
		"users":              s.repos.Users.DeleteByKey,
		"roles":              s.repos.Roles.DeleteByKey,
		"linked accounts":    s.repos.LinkedAccounts.DeleteByKey,
	}
	for name, del := range deletes {
		s.NoError(del(s.ctx, "missing"), name)
	}
}

func (s *StoreSuite) TestDeleteTwiceEqualsDeleteOnce() {
	s.seedApplication()
	s.Require().NoError(s.repos.Applications.DeleteByKey(s.ctx, "A"))
	once := s.snapshot()

	s.Require().NoError(s.repos.Applications.DeleteByKey(s.ctx, "A"))
	s.Equal(once, s.snapshot())

	s.create(&model.SecurityQuestion{ID: "q1"})
	q := &model.SecurityQuestion{ID: "q1"}
	s.Require().NoError(s.repos.SecurityQuestions.Delete(s.ctx, q))
	s.Require().NoError(s.repos.SecurityQuestions.Delete(s.ctx, q))
	s.Equal(int64(0), s.count(&model.SecurityQuestion{}, ""))
}

func (s *StoreSuite) snapshot() map[string]int64 {
	out := map[string]int64{}
	for _, m := range model.All() {
		stmt := s.db.Model(m).Statement
		s.Require().NoError(stmt.Parse(m))
		out[stmt.Schema.Table] = s.count(m, "")
	}
	for _, join := range []string{"role_privileges", "linked_account_privileges"} {
		var n int64
		s.Require().NoError(s.db.Table(join).Count(&n).Error)
		out[join] = n
	}
	return out
}

func (s *StoreSuite) TestCascadesTable() {
	rows := Cascades()
	roots := map[string]bool{}
	for _, r := range rows {
		roots[r.Root] = true
	}
	for _, root := range []string{"application", "auth module", "security question", "connector", "implementation", "policy"} {
		s.True(roots[root], root)
	}

	var connectorSteps []cascade.Spec
	for _, r := range rows {
		if r.Root == "connector" {
			connectorSteps = append(connectorSteps, r)
		}
	}
	s.Require().Len(connectorSteps, 2)
	s.Equal(cascade.DeleteReferrers, connectorSteps[0].Mutation)
	s.True(connectorSteps[1].AfterCommit)
	s.Equal(cascade.Unregister, connectorSteps[1].Mutation)
}
