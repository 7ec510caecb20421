// Package audit records deletions and batch reaps in RFC5424 syslog format.
//
// Events are written to stdout and, when IDREPO_AUDIT_DATABASE_URL is set,
// stored in the audit_messages table. IDREPO_AUDIT_ENABLED=false turns
// auditing off.
//
//	audit.Log(audit.DeleteEvent{
//	    Collection: "applications",
//	    Key:        "billing",
//	    ClientIP:   r.RemoteAddr,
//	    Success:    true,
//	})
package audit
