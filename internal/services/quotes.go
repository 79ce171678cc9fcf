package services

// Quote is a motivational line shown on the dashboard.
type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

var quotes = []Quote{
	{"The only way to do great work is to love what you do.", "Steve Jobs"},
	{"Success is the sum of small efforts repeated day in and day out.", "Robert Collier"},
	{"Discipline equals freedom.", "Jocko Willink"},
	{"Hard work beats talent when talent doesn't work hard.", "Tim Notke"},
	{"Quality means doing it right when no one is looking.", "Henry Ford"},
	{"Don't watch the clock; do what it does. Keep going.", "Sam Levenson"},
	{"Dreams don't work unless you do.", "John C. Maxwell"},
	{"The future depends on what you do today.", "Mahatma Gandhi"},
	{"Success usually comes to those who are too busy to be looking for it.", "Henry David Thoreau"},
	{"There are no shortcuts to any place worth going.", "Beverly Sills"},
	{"If you're not willing to work hard, someone else will.", "Mark Cuban"},
	{"Action is the foundational key to all success.", "Pablo Picasso"},
	{"Well done is better than well said.", "Benjamin Franklin"},
	{"Opportunities multiply as they are seized.", "Sun Tzu"},
	{"Work hard in silence, let success make the noise.", "Frank Ocean"},
	{"Without discipline, success is impossible.", "Lou Holtz"},
	{"The secret of getting ahead is getting started.", "Mark Twain"},
	{"Do the hard jobs first.", "Dale Carnegie"},
	{"Success is built on daily discipline.", "Robin Sharma"},
	{"You don't get what you wish for. You get what you work for.", "Daniel Milstein"},
	{"Work gives you meaning and purpose.", "Stephen Hawking"},
	{"Excellence is a continuous process, not an accident.", "Aristotle"},
	{"We are what we repeatedly do.", "Aristotle"},
	{"The harder I work, the luckier I get.", "Gary Player"},
	{"Small disciplines repeated daily lead to great achievements.", "Jim Rohn"},
	{"Don't be busy, be productive.", "Tim Ferriss"},
	{"Success is walking from failure to failure with no loss of enthusiasm.", "Winston Churchill"},
	{"Work ethic eliminates fear.", "Michael Jordan"},
	{"If it's important, you'll find a way.", "Charles Buxton"},
	{"Effort only fully releases its reward after a person refuses to quit.", "Napoleon Hill"},
	{"Genius is 1% inspiration and 99% perspiration.", "Thomas Edison"},
	{"Focus is about saying no.", "Steve Jobs"},
	{"Don't count the days, make the days count.", "Muhammad Ali"},
	{"Work like someone is working 24 hours to take it away from you.", "Mark Cuban"},
	{"Success demands sacrifice.", "Lee Kuan Yew"},
	{"Productivity is never an accident.", "Paul J. Meyer"},
	{"Stay hungry, stay foolish.", "Steve Jobs"},
	{"What you do today can improve all your tomorrows.", "Ralph Marston"},
	{"You miss 100% of the shots you don't take.", "Wayne Gretzky"},
	{"Do one thing every day that scares you.", "Eleanor Roosevelt"},
	{"Work hard now so life can be easier later.", "Zig Ziglar"},
	{"Earn your success based on service.", "Zig Ziglar"},
	{"Great things come from hard work and perseverance.", "Kobe Bryant"},
	{"If you're going through hell, keep going.", "Winston Churchill"},
	{"A dream written down becomes a goal.", "Greg S. Reid"},
	{"Work until your idols become your rivals.", "Drake"},
	{"Nothing will work unless you do.", "Maya Angelou"},
	{"There is no substitute for hard work.", "Thomas Edison"},
	{"Do what you can, with what you have.", "Theodore Roosevelt"},
	{"Excellence is not an act, it's a habit.", "Aristotle"},
}

// QuoteCount is the number of quotes QuoteAt cycles through.
func QuoteCount() int {
	return len(quotes)
}

// QuoteAt picks a quote by index; any integer is valid and wraps around.
func QuoteAt(i int) Quote {
	n := len(quotes)
	return quotes[((i%n)+n)%n]
}
