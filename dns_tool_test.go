package main

import (
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/miekg/dns"
)

// dnsServerEnv points the fake tool at the test server regardless of -s,
// so fixtures can keep the public resolver addresses they were written with.
const dnsServerEnv = "DNS_TEST_SERVER"

// fakeDNS stands in for the real dns tool in scripts. It accepts the same
// arguments (dns [-r] [-x] [-6] -s server [-p port] address) and prints the
// answer in the same layout, with the TTL rendered as "TTL: <n>,".
func fakeDNS() {
	os.Exit(fakeDNSMain(os.Args[1:], os.Stdout, os.Stderr))
}

func fakeDNSMain(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("dns", flag.ContinueOnError)
	fs.SetOutput(stderr)
	recursive := fs.Bool("r", false, "recursion desired")
	reverse := fs.Bool("x", false, "reverse query")
	ipv6 := fs.Bool("6", false, "query AAAA instead of A")
	server := fs.String("s", "", "server to query")
	port := fs.Int("p", 53, "server port")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	switch {
	case *server == "":
		fmt.Fprintln(stderr, "-s argument is missing")
		return 1
	case fs.NArg() == 0:
		fmt.Fprintln(stderr, "Missing address argument")
		return 1
	case fs.NArg() > 1:
		fmt.Fprintln(stderr, "Too many arguments")
		return 1
	}

	name, qtype := dns.Fqdn(fs.Arg(0)), dns.TypeA
	if *ipv6 {
		qtype = dns.TypeAAAA
	}
	if *reverse {
		arpa, err := dns.ReverseAddr(fs.Arg(0))
		if err != nil {
			fmt.Fprintln(stderr, "Address is not IP type")
			return 1
		}
		name, qtype = arpa, dns.TypePTR
	}

	target := net.JoinHostPort(*server, strconv.Itoa(*port))
	if addr := os.Getenv(dnsServerEnv); addr != "" {
		target = addr
	}

	query := &dns.Msg{}
	query.SetQuestion(name, qtype)
	query.RecursionDesired = *recursive

	resp, err := dns.Exchange(query, target)
	if err != nil {
		fmt.Fprintln(stderr, "Error: Failed to get server address")
		return 1
	}
	if resp.Rcode != dns.RcodeSuccess {
		fmt.Fprintf(stderr, "Error: %s (%d)\n", dns.RcodeToString[resp.Rcode], resp.Rcode)
		return 1
	}

	fmt.Fprint(stdout, formatResponse(resp))
	return 0
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func formatResponse(resp *dns.Msg) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Authoritative: %s, Recursive: %s, Truncated: %s\n",
		yesNo(resp.Authoritative), yesNo(resp.RecursionDesired), yesNo(resp.Truncated))

	fmt.Fprintf(&b, "Question section (%d)\n", len(resp.Question))
	for _, q := range resp.Question {
		fmt.Fprintf(&b, "  %s, %s, %s\n", q.Name, dns.TypeToString[q.Qtype], dns.ClassToString[q.Qclass])
	}

	sections := []struct {
		title string
		rrs   []dns.RR
	}{
		{"Answer", resp.Answer},
		{"Authority", resp.Ns},
		{"Additional", resp.Extra},
	}
	for _, s := range sections {
		fmt.Fprintf(&b, "%s section (%d)\n", s.title, len(s.rrs))
		for _, rr := range s.rrs {
			b.WriteString("  " + formatRR(rr) + "\n")
		}
	}
	return b.String()
}

func formatRR(rr dns.RR) string {
	hdr := rr.Header()
	var data string
	switch rr := rr.(type) {
	case *dns.A:
		data = rr.A.String()
	case *dns.AAAA:
		data = rr.AAAA.String()
	case *dns.CNAME:
		data = rr.Target
	case *dns.NS:
		data = rr.Ns
	case *dns.PTR:
		data = rr.Ptr
	default:
		data = strings.TrimPrefix(rr.String(), hdr.String())
	}
	return fmt.Sprintf("%s, %s, %s, TTL: %d, %d, %s",
		hdr.Name, dns.TypeToString[hdr.Rrtype], dns.ClassToString[hdr.Class], hdr.Ttl, hdr.Rdlength, data)
}
