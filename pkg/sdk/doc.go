// Package strdex embeds the strdex string analysis store in a Go program,
// without running the HTTP service.
//
// Every value is analyzed once on Create (length, palindrome check, unique
// characters, word count, SHA-256 and character frequencies) and kept in
// process memory keyed by its hash.
//
//	client, _ := strdex.New(strdex.WithMaxValueBytes(4096))
//	_, _ = client.Strings().Create(ctx, "racecar")
//
//	pal := true
//	res, _ := client.Strings().List(ctx, strdex.Filter{IsPalindrome: &pal})
//
//	q, _ := client.Strings().Query(ctx, "all single word palindromic strings")
//	fmt.Println(q.Count, q.Recognized)
package strdex
